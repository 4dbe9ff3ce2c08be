// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Port is a uint16 type for IP ports. Use PortRange to restrict the
// acceptable range of a Port argument.
type Port uint16

// PortRange restricts a Port parser to the inclusive range [min, max].
func PortRange(p Parser[Port], min, max Port) Parser[Port] {
	return Guard(p, func(v Port) bool {
		return v >= min && v <= max
	}, fmt.Sprintf("port must be between %d and %d", min, max))
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(url.URL{})
	semverType   = reflect.TypeOf(semver.Version{})
	portType     = reflect.TypeOf(Port(0))
)

// convertValue converts raw text to T using the built-in conversions.
// Special types are handled first, everything else goes through the
// reflect kind switch.
func convertValue[T any](s string) (T, error) {
	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	if err := setValue(rv, s); err != nil {
		return zero, err
	}
	return zero, nil
}

func setValue(rv reflect.Value, s string) error {
	switch rv.Type() {
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		rv.SetInt(int64(d))
		return nil
	case urlType:
		u, err := url.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", s, err)
		}
		rv.Set(reflect.ValueOf(*u))
		return nil
	case semverType:
		v, err := semver.NewVersion(s)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", s, err)
		}
		rv.Set(reflect.ValueOf(*v))
		return nil
	case portType:
		p, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
				return fmt.Errorf("port must be between 0 and 65535, got %q", s)
			}
			return fmt.Errorf("invalid port value %q", s)
		}
		rv.SetUint(p)
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", s, err)
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", s, err)
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q: %w", s, err)
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", s, err)
		}
		rv.SetFloat(f)
		return nil
	}

	return fmt.Errorf("unsupported value type %s", rv.Type())
}

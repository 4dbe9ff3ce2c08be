// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"fmt"
	"slices"
)

// Named accumulates the name set for a named item: long and short names,
// help text, and an optional environment fallback key. The first long name
// (or first short, if there are no longs) is the visible one; later
// additions are hidden aliases. A Named is mutated only at composition time;
// the parsers built from it are immutable.
type Named struct {
	longs  []string
	shorts []rune
	env    string
	help   string
}

// Long starts a named item with a visible long name.
func Long(name string) *Named { return &Named{longs: []string{name}} }

// Short starts a named item with a visible short name.
func Short(r rune) *Named { return &Named{shorts: []rune{r}} }

// Long adds a long name. The first one wins visibility.
func (n *Named) Long(name string) *Named {
	n.longs = append(n.longs, name)
	return n
}

// Short adds a short name.
func (n *Named) Short(r rune) *Named {
	n.shorts = append(n.shorts, r)
	return n
}

// Env attaches an environment fallback key. The value is supplied by the
// lookup capability injected into the run driver; when the item is wholly
// absent from the command line the lookup result stands in for it.
func (n *Named) Env(key string) *Named {
	n.env = key
	return n
}

// Help attaches help text.
func (n *Named) Help(text string) *Named {
	n.help = text
	return n
}

func (n *Named) display() string {
	if len(n.longs) > 0 {
		return "--" + n.longs[0]
	}
	if len(n.shorts) > 0 {
		return "-" + string(n.shorts[0])
	}
	return "?"
}

func (n *Named) metaItem(kind MetaKind, metavar string) *Meta {
	return &Meta{
		Kind:    kind,
		Longs:   slices.Clone(n.longs),
		Shorts:  slices.Clone(n.shorts),
		Metavar: metavar,
		Help:    n.help,
		Env:     n.env,
	}
}

// Switch builds a presence flag: true when the flag is present, false
// otherwise. Absence is never an error.
func (n *Named) Switch() Parser[bool] {
	return &flagParser[bool]{named: n, present: true, absent: false, hasAbsent: true}
}

// Flag builds a flag that yields present when the flag occurs and absent
// otherwise.
func Flag[T any](n *Named, present, absent T) Parser[T] {
	return &flagParser[T]{named: n, present: present, absent: absent, hasAbsent: true}
}

// ReqFlag builds a required flag: it yields present when the flag occurs and
// reports a missing-value failure otherwise, so an enclosing combinator (or
// the run driver) turns absence into an error unless it opts to recover.
func ReqFlag[T any](n *Named, present T) Parser[T] {
	return &flagParser[T]{named: n, present: present}
}

type flagParser[T any] struct {
	named     *Named
	present   T
	absent    T
	hasAbsent bool
}

func (p *flagParser[T]) meta() *Meta { return p.named.metaItem(MetaFlag, "") }

func (p *flagParser[T]) run(st *state) (T, error) {
	var zero T
	found, err := st.takeFlag(p.named)
	if err != nil {
		return zero, err
	}
	if found {
		return p.present, nil
	}
	if p.named.env != "" && st.lookup != nil {
		if _, ok := st.lookup(p.named.env); ok {
			return p.present, nil
		}
	}
	if p.hasAbsent {
		return p.absent, nil
	}
	return zero, &MissingError{Meta: p.meta()}
}

// Argument builds a named argument whose value is converted with the
// built-in conversions (strings, numbers, time.Duration, url.URL,
// semver.Version, Port).
func Argument[T any](n *Named, metavar string) Parser[T] {
	return &argParser[T]{named: n, metavar: metavar, parse: convertValue[T]}
}

// ArgumentWith builds a named argument with a caller-supplied conversion.
func ArgumentWith[T any](n *Named, metavar string, parse func(string) (T, error)) Parser[T] {
	return &argParser[T]{named: n, metavar: metavar, parse: parse}
}

type argParser[T any] struct {
	named   *Named
	metavar string
	parse   func(string) (T, error)
}

func (p *argParser[T]) meta() *Meta { return p.named.metaItem(MetaArgument, p.metavar) }

func (p *argParser[T]) run(st *state) (T, error) {
	var zero T
	raw, found, err := st.takeValue(p.named, p.metavar)
	if err != nil {
		return zero, err
	}
	if !found && p.named.env != "" && st.lookup != nil {
		if v, ok := st.lookup(p.named.env); ok {
			raw, found = v, true
		}
	}
	if !found {
		return zero, &MissingError{Meta: p.meta()}
	}
	v, err := p.parse(raw)
	if err != nil {
		return zero, &ValueError{
			Item:  p.named.display(),
			Value: raw,
			Msg:   fmt.Sprintf("%s: couldn't parse %q: %v", p.named.display(), raw, err),
			Err:   err,
		}
	}
	return v, nil
}

// takeFlag claims the first unconsumed token carrying one of the named
// item's names, with no value. Squashed short clusters are claimed one
// letter at a time.
func (st *state) takeFlag(n *Named) (bool, error) {
	for i, a := range st.args {
		if st.consumed[i] || a.posOnly {
			continue
		}
		switch a.kind {
		case argLong:
			if !slices.Contains(n.longs, a.name) {
				continue
			}
			if a.value != nil {
				return false, &ValueError{
					Item:  "--" + a.name,
					Value: *a.value,
					Msg:   fmt.Sprintf("flag --%s does not take a value", a.name),
				}
			}
			st.claim(i)
			return true, nil
		case argShort:
			rs := []rune(a.name)
			pos := st.cluster[i]
			if pos >= len(rs) || !slices.Contains(n.shorts, rs[pos]) {
				continue
			}
			if a.value != nil && pos+1 == len(rs) {
				return false, &ValueError{
					Item:  "-" + string(rs[pos]),
					Value: *a.value,
					Msg:   fmt.Sprintf("flag -%s does not take a value", string(rs[pos])),
				}
			}
			st.cluster[i]++
			if st.cluster[i] == len(rs) && a.value == nil {
				st.consumed[i] = true
			}
			st.count++
			return true, nil
		}
	}
	return false, nil
}

// takeValue claims a name token plus its value. The value may be a separate
// following word, an "="-joined suffix, or, for short names, directly
// concatenated ("-s100"). Finding the name without a usable value is a hard
// error; not finding the name at all is not.
func (st *state) takeValue(n *Named, metavar string) (string, bool, error) {
	for i, a := range st.args {
		if st.consumed[i] || a.posOnly {
			continue
		}
		switch a.kind {
		case argLong:
			if !slices.Contains(n.longs, a.name) {
				continue
			}
			if a.value != nil {
				st.claim(i)
				return *a.value, true, nil
			}
			j, ok := st.nextValueToken(i)
			if !ok {
				return "", false, &ValueError{
					Item: "--" + a.name,
					Msg:  fmt.Sprintf("--%s requires a value %s", a.name, metavar),
				}
			}
			st.claim(i)
			st.claim(j)
			return st.args[j].raw, true, nil
		case argShort:
			rs := []rune(a.name)
			pos := st.cluster[i]
			if pos >= len(rs) || !slices.Contains(n.shorts, rs[pos]) {
				continue
			}
			if rest := string(rs[pos+1:]); rest != "" {
				// "-s100", or the tail of a squashed cluster "-abfoo"
				if a.value != nil {
					rest += "=" + *a.value
				}
				st.claim(i)
				return rest, true, nil
			}
			if a.value != nil {
				st.claim(i)
				return *a.value, true, nil
			}
			j, ok := st.nextValueToken(i)
			if !ok {
				return "", false, &ValueError{
					Item: "-" + string(rs[pos]),
					Msg:  fmt.Sprintf("-%s requires a value %s", string(rs[pos]), metavar),
				}
			}
			st.claim(i)
			st.claim(j)
			return st.args[j].raw, true, nil
		}
	}
	return "", false, nil
}

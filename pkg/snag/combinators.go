// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"errors"
	"fmt"
)

// Pure yields v without consuming anything.
func Pure[T any](v T) Parser[T] {
	return &pureParser[T]{value: v}
}

type pureParser[T any] struct{ value T }

func (p *pureParser[T]) meta() *Meta              { return &Meta{Kind: MetaAnd} }
func (p *pureParser[T]) run(st *state) (T, error) { return p.value, nil }

// Map applies f to the inner parser's successful value.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return &mapParser[A, B]{inner: p, f: f}
}

type mapParser[A, B any] struct {
	inner Parser[A]
	f     func(A) B
}

func (p *mapParser[A, B]) meta() *Meta { return p.inner.meta() }

func (p *mapParser[A, B]) run(st *state) (B, error) {
	var zero B
	a, err := p.inner.run(st)
	if err != nil {
		return zero, err
	}
	return p.f(a), nil
}

// ParseWith applies a fallible transform to the inner parser's value. A
// transform failure is reported as an invalid value carrying the transform's
// message.
func ParseWith[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return &parseParser[A, B]{inner: p, f: f}
}

type parseParser[A, B any] struct {
	inner Parser[A]
	f     func(A) (B, error)
}

func (p *parseParser[A, B]) meta() *Meta { return p.inner.meta() }

func (p *parseParser[A, B]) run(st *state) (B, error) {
	var zero B
	a, err := p.inner.run(st)
	if err != nil {
		return zero, err
	}
	b, err := p.f(a)
	if err != nil {
		return zero, &ValueError{
			Item:  p.inner.meta().DisplayName(),
			Value: fmt.Sprint(a),
			Msg:   fmt.Sprintf("%s: %v", p.inner.meta().DisplayName(), err),
			Err:   err,
		}
	}
	return b, nil
}

// Guard rejects values for which ok is false, reporting msg.
func Guard[T any](p Parser[T], ok func(T) bool, msg string) Parser[T] {
	return &guardParser[T]{inner: p, ok: ok, msg: msg}
}

type guardParser[T any] struct {
	inner Parser[T]
	ok    func(T) bool
	msg   string
}

func (p *guardParser[T]) meta() *Meta { return p.inner.meta() }

func (p *guardParser[T]) run(st *state) (T, error) {
	var zero T
	v, err := p.inner.run(st)
	if err != nil {
		return zero, err
	}
	if !p.ok(v) {
		return zero, &ValueError{
			Item:  p.inner.meta().DisplayName(),
			Value: fmt.Sprint(v),
			Msg:   fmt.Sprintf("%q: %s", fmt.Sprint(v), p.msg),
		}
	}
	return v, nil
}

// Fallback substitutes v when the inner parser reports absence, rolling
// back anything the failed attempt consumed. Invalid values are never
// masked, only absence.
func Fallback[T any](p Parser[T], v T) Parser[T] {
	return &fallbackParser[T]{inner: p, value: v}
}

// FallbackWith is Fallback with a computed substitute.
func FallbackWith[T any](p Parser[T], f func() (T, error)) Parser[T] {
	return &fallbackParser[T]{inner: p, f: f}
}

type fallbackParser[T any] struct {
	inner Parser[T]
	value T
	f     func() (T, error)
}

func (p *fallbackParser[T]) meta() *Meta {
	return &Meta{Kind: MetaOptional, Children: []*Meta{p.inner.meta()}}
}

func (p *fallbackParser[T]) run(st *state) (T, error) {
	m := st.save()
	v, err := p.inner.run(st)
	if err == nil {
		return v, nil
	}
	if !isMissing(err) {
		var zero T
		return zero, err
	}
	// The failed attempt may have claimed some tokens before the part
	// that was absent; substituting the default must not swallow them.
	st.restore(m)
	if p.f != nil {
		v, ferr := p.f()
		if ferr != nil {
			var zero T
			return zero, &MessageError{Msg: ferr.Error()}
		}
		return v, nil
	}
	return p.value, nil
}

// Optional turns absence into a nil result with zero consumption. A present
// but invalid value propagates unless Catch is set, in which case the failed
// attempt's partial consumption is rolled back and nil is returned.
func Optional[T any](p Parser[T]) *OptionalParser[T] {
	return &OptionalParser[T]{inner: p}
}

// OptionalParser yields *T: nil when the inner parser found nothing.
type OptionalParser[T any] struct {
	inner Parser[T]
	catch bool
}

// Catch makes any inner failure read as absence.
func (p *OptionalParser[T]) Catch() *OptionalParser[T] {
	p.catch = true
	return p
}

func (p *OptionalParser[T]) meta() *Meta {
	return &Meta{Kind: MetaOptional, Children: []*Meta{p.inner.meta()}}
}

func (p *OptionalParser[T]) run(st *state) (*T, error) {
	m := st.save()
	v, err := p.inner.run(st)
	if err == nil {
		return &v, nil
	}
	if isMissing(err) || p.catch {
		st.restore(m)
		return nil, nil
	}
	return nil, err
}

// Many collects zero or more matches of p, stopping when it reports
// absence. A success that consumes nothing is counted once.
func Many[T any](p Parser[T]) *RepeatParser[T] {
	return &RepeatParser[T]{inner: p}
}

// Some is Many requiring at least one match; with none it fails with msg.
func Some[T any](p Parser[T], msg string) *RepeatParser[T] {
	return &RepeatParser[T]{inner: p, atLeast: 1, msg: msg}
}

// RepeatParser yields the ordered sequence of the child's successes.
type RepeatParser[T any] struct {
	inner   Parser[T]
	atLeast int
	msg     string
	catch   bool
}

// Catch makes any hard failure of an iteration read as a clean stop,
// discarding that attempt's partial consumption.
func (p *RepeatParser[T]) Catch() *RepeatParser[T] {
	p.catch = true
	return p
}

func (p *RepeatParser[T]) meta() *Meta {
	return &Meta{Kind: MetaMany, AtLeast: p.atLeast, Children: []*Meta{p.inner.meta()}}
}

func (p *RepeatParser[T]) run(st *state) ([]T, error) {
	out := []T{}
	for {
		m := st.save()
		v, err := p.inner.run(st)
		if err != nil {
			st.restore(m)
			if isMissing(err) || p.catch {
				break
			}
			return nil, err
		}
		out = append(out, v)
		if st.count == m.count {
			break
		}
	}
	if len(out) < p.atLeast {
		msg := p.msg
		if msg == "" {
			msg = fmt.Sprintf("expected at least one %s", p.inner.meta())
		}
		return nil, &MessageError{Msg: msg}
	}
	return out, nil
}

// Choice tries every alternative against a private snapshot of the pool and
// commits the one that consumed the most tokens; exact ties go to the
// earlier declaration. When everything fails the most specific reason wins:
// a hard failure over plain absence, and among hard failures the branch that
// got further.
func Choice[T any](alts ...Parser[T]) Parser[T] {
	return &choiceParser[T]{alts: alts}
}

type choiceParser[T any] struct{ alts []Parser[T] }

func (p *choiceParser[T]) meta() *Meta {
	children := make([]*Meta, 0, len(p.alts))
	for _, a := range p.alts {
		children = append(children, a.meta())
	}
	return &Meta{Kind: MetaOr, Children: children}
}

func (p *choiceParser[T]) run(st *state) (T, error) {
	var zero T
	orig := st.save()

	var (
		bestVal   T
		bestMark  mark
		bestWidth = -1
		hardErr   error
		hardWidth = -1
		misses    []*Meta
	)
	for _, alt := range p.alts {
		st.restore(orig)
		v, err := alt.run(st)
		if err != nil {
			if isMissing(err) {
				var me *MissingError
				if errors.As(err, &me) && me.Meta != nil {
					misses = append(misses, me.Meta)
				}
				continue
			}
			if w := st.count - orig.count; w > hardWidth {
				hardErr, hardWidth = err, w
			}
			continue
		}
		if w := st.count - orig.count; w > bestWidth {
			bestVal, bestMark, bestWidth = v, st.save(), w
		}
	}

	if bestWidth >= 0 {
		st.restore(bestMark)
		return bestVal, nil
	}
	st.restore(orig)
	if hardErr != nil {
		return zero, hardErr
	}
	if len(misses) > 0 {
		return zero, &MissingError{Meta: &Meta{Kind: MetaOr, Children: misses}}
	}
	return zero, &MissingError{Meta: p.meta()}
}

// Adjacent requires all tokens claimed by the inner parser to be contiguous
// in the pool: no token that was up for grabs may be skipped inside the
// claimed span. This keeps repeated groups like
// "--rect --width 10 --height 10" from interleaving with unrelated items.
func Adjacent[T any](p Parser[T]) Parser[T] {
	return &adjacentParser[T]{inner: p}
}

type adjacentParser[T any] struct{ inner Parser[T] }

func (p *adjacentParser[T]) meta() *Meta {
	return &Meta{Kind: MetaAdjacent, Children: []*Meta{p.inner.meta()}}
}

func (p *adjacentParser[T]) run(st *state) (T, error) {
	var zero T
	m := st.save()
	v, err := p.inner.run(st)
	if err != nil {
		return zero, err
	}

	touched := func(i int) bool {
		return st.consumed[i] != m.consumed[i] || st.cluster[i] != m.cluster[i]
	}
	first, last := -1, -1
	for i := range st.args {
		if touched(i) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	for i := first; first >= 0 && i <= last; i++ {
		if !touched(i) && !m.consumed[i] {
			raw := st.args[i].raw
			st.restore(m)
			return zero, &MessageError{
				Msg: fmt.Sprintf("%s must not be interleaved with %q", p.inner.meta(), raw),
			}
		}
	}
	return v, nil
}

// claimsWords reports whether a description can consume bare-word tokens:
// positionals, command names, or anything containing them.
func claimsWords(m *Meta) bool {
	switch m.Kind {
	case MetaPositional, MetaCommand:
		return true
	}
	for _, c := range m.Children {
		if claimsWords(c) {
			return true
		}
	}
	return false
}

// runOrder sequences a product's children: named-only children first, then
// word-claiming children in declaration order. A named sibling's separate
// value token is a bare word until the name claims it, so positionals must
// not get an earlier look at the pool.
func runOrder(metas []*Meta) []int {
	order := make([]int, 0, len(metas))
	for i, m := range metas {
		if !claimsWords(m) {
			order = append(order, i)
		}
	}
	for i, m := range metas {
		if claimsWords(m) {
			order = append(order, i)
		}
	}
	return order
}

// Construct2 combines two parsers into a product and applies f to build the
// result. Children sharing the pool run named-first (see runOrder), with
// positional children claiming words in declaration order. Earlier siblings'
// consumption is not rolled back when a later sibling fails; wrap the
// product in Optional(...).Catch() or Adjacent where atomicity matters.
func Construct2[A, B, R any](pa Parser[A], pb Parser[B], f func(A, B) R) Parser[R] {
	return &construct2[A, B, R]{pa, pb, f}
}

type construct2[A, B, R any] struct {
	a Parser[A]
	b Parser[B]
	f func(A, B) R
}

func (p *construct2[A, B, R]) meta() *Meta {
	return &Meta{Kind: MetaAnd, Children: []*Meta{p.a.meta(), p.b.meta()}}
}

func (p *construct2[A, B, R]) run(st *state) (R, error) {
	var zero R
	var a A
	var b B
	for _, i := range runOrder([]*Meta{p.a.meta(), p.b.meta()}) {
		var err error
		switch i {
		case 0:
			a, err = p.a.run(st)
		case 1:
			b, err = p.b.run(st)
		}
		if err != nil {
			return zero, err
		}
	}
	return p.f(a, b), nil
}

// Construct3 is Construct2 for three fields.
func Construct3[A, B, C, R any](pa Parser[A], pb Parser[B], pc Parser[C], f func(A, B, C) R) Parser[R] {
	return &construct3[A, B, C, R]{pa, pb, pc, f}
}

type construct3[A, B, C, R any] struct {
	a Parser[A]
	b Parser[B]
	c Parser[C]
	f func(A, B, C) R
}

func (p *construct3[A, B, C, R]) meta() *Meta {
	return &Meta{Kind: MetaAnd, Children: []*Meta{p.a.meta(), p.b.meta(), p.c.meta()}}
}

func (p *construct3[A, B, C, R]) run(st *state) (R, error) {
	var zero R
	var a A
	var b B
	var c C
	for _, i := range runOrder([]*Meta{p.a.meta(), p.b.meta(), p.c.meta()}) {
		var err error
		switch i {
		case 0:
			a, err = p.a.run(st)
		case 1:
			b, err = p.b.run(st)
		case 2:
			c, err = p.c.run(st)
		}
		if err != nil {
			return zero, err
		}
	}
	return p.f(a, b, c), nil
}

// Construct4 is Construct2 for four fields.
func Construct4[A, B, C, D, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], f func(A, B, C, D) R) Parser[R] {
	return &construct4[A, B, C, D, R]{pa, pb, pc, pd, f}
}

type construct4[A, B, C, D, R any] struct {
	a Parser[A]
	b Parser[B]
	c Parser[C]
	d Parser[D]
	f func(A, B, C, D) R
}

func (p *construct4[A, B, C, D, R]) meta() *Meta {
	return &Meta{Kind: MetaAnd, Children: []*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta()}}
}

func (p *construct4[A, B, C, D, R]) run(st *state) (R, error) {
	var zero R
	var a A
	var b B
	var c C
	var d D
	for _, i := range runOrder([]*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta()}) {
		var err error
		switch i {
		case 0:
			a, err = p.a.run(st)
		case 1:
			b, err = p.b.run(st)
		case 2:
			c, err = p.c.run(st)
		case 3:
			d, err = p.d.run(st)
		}
		if err != nil {
			return zero, err
		}
	}
	return p.f(a, b, c, d), nil
}

// Construct5 is Construct2 for five fields.
func Construct5[A, B, C, D, E, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], f func(A, B, C, D, E) R) Parser[R] {
	return &construct5[A, B, C, D, E, R]{pa, pb, pc, pd, pe, f}
}

type construct5[A, B, C, D, E, R any] struct {
	a Parser[A]
	b Parser[B]
	c Parser[C]
	d Parser[D]
	e Parser[E]
	f func(A, B, C, D, E) R
}

func (p *construct5[A, B, C, D, E, R]) meta() *Meta {
	return &Meta{Kind: MetaAnd, Children: []*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta(), p.e.meta()}}
}

func (p *construct5[A, B, C, D, E, R]) run(st *state) (R, error) {
	var zero R
	var a A
	var b B
	var c C
	var d D
	var e E
	for _, i := range runOrder([]*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta(), p.e.meta()}) {
		var err error
		switch i {
		case 0:
			a, err = p.a.run(st)
		case 1:
			b, err = p.b.run(st)
		case 2:
			c, err = p.c.run(st)
		case 3:
			d, err = p.d.run(st)
		case 4:
			e, err = p.e.run(st)
		}
		if err != nil {
			return zero, err
		}
	}
	return p.f(a, b, c, d, e), nil
}

// Construct6 is Construct2 for six fields.
func Construct6[A, B, C, D, E, F, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], f func(A, B, C, D, E, F) R) Parser[R] {
	return &construct6[A, B, C, D, E, F, R]{pa, pb, pc, pd, pe, pf, f}
}

type construct6[A, B, C, D, E, F, R any] struct {
	a Parser[A]
	b Parser[B]
	c Parser[C]
	d Parser[D]
	e Parser[E]
	g Parser[F]
	f func(A, B, C, D, E, F) R
}

func (p *construct6[A, B, C, D, E, F, R]) meta() *Meta {
	return &Meta{Kind: MetaAnd, Children: []*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta(), p.e.meta(), p.g.meta()}}
}

func (p *construct6[A, B, C, D, E, F, R]) run(st *state) (R, error) {
	var zero R
	var a A
	var b B
	var c C
	var d D
	var e E
	var g F
	for _, i := range runOrder([]*Meta{p.a.meta(), p.b.meta(), p.c.meta(), p.d.meta(), p.e.meta(), p.g.meta()}) {
		var err error
		switch i {
		case 0:
			a, err = p.a.run(st)
		case 1:
			b, err = p.b.run(st)
		case 2:
			c, err = p.c.run(st)
		case 3:
			d, err = p.d.run(st)
		case 4:
			e, err = p.e.run(st)
		case 5:
			g, err = p.g.run(st)
		}
		if err != nil {
			return zero, err
		}
	}
	return p.f(a, b, c, d, e, g), nil
}

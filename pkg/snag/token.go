// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"slices"
	"strings"
)

type argKind uint8

const (
	argWord  argKind = iota // plain word, or anything after "--"
	argShort                // "-x" or a squashed cluster like "-abc"
	argLong                 // "--name"
)

// arg is one raw command-line token, pre-split into its syntactic parts.
type arg struct {
	raw     string
	name    string  // long name or short cluster letters, without dashes
	value   *string // "="-attached value, if any
	posOnly bool    // appeared after the "--" separator
	kind    argKind
}

// splitArgs classifies raw tokens. The first "--" is removed from the pool
// and everything after it is tagged positional-only. Negative numbers like
// "-5" or "-0.5" are words, not short clusters.
func splitArgs(raw []string) []arg {
	out := make([]arg, 0, len(raw))
	afterSep := false
	for _, s := range raw {
		if !afterSep && s == "--" {
			afterSep = true
			continue
		}
		a := arg{raw: s, posOnly: afterSep, kind: argWord}
		switch {
		case afterSep:
			// everything is a plain word past the separator
		case strings.HasPrefix(s, "--"):
			a.kind = argLong
			a.name = s[2:]
			if i := strings.Index(a.name, "="); i >= 0 {
				v := a.name[i+1:]
				a.name, a.value = a.name[:i], &v
			}
		case strings.HasPrefix(s, "-") && len(s) > 1 && !looksNumeric(s[1:]):
			a.kind = argShort
			a.name = s[1:]
			if i := strings.Index(a.name, "="); i >= 0 {
				v := a.name[i+1:]
				a.name, a.value = a.name[:i], &v
			}
		}
		out = append(out, a)
	}
	return out
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

// state is the mutable token pool for a single run attempt. Tokens are never
// reordered; matchers flip consumed bits and advance short-cluster cursors.
// count increases by one per claimed token unit and drives both the
// longest-match tie-break and the zero-consumption loop guard.
type state struct {
	args     []arg
	consumed []bool
	cluster  []int // next unclaimed letter (rune index) per short cluster
	count    int
	lookup   func(string) (string, bool)
}

func newState(raw []string, lookup func(string) (string, bool)) *state {
	args := splitArgs(raw)
	return &state{
		args:     args,
		consumed: make([]bool, len(args)),
		cluster:  make([]int, len(args)),
		lookup:   lookup,
	}
}

// mark is a snapshot of consumption state, used by combinators that must
// attempt a child on a private copy and keep the copy only on success.
type mark struct {
	consumed []bool
	cluster  []int
	count    int
}

func (st *state) save() mark {
	return mark{
		consumed: slices.Clone(st.consumed),
		cluster:  slices.Clone(st.cluster),
		count:    st.count,
	}
}

func (st *state) restore(m mark) {
	copy(st.consumed, m.consumed)
	copy(st.cluster, m.cluster)
	st.count = m.count
}

func (st *state) claim(i int) {
	st.consumed[i] = true
	st.cluster[i] = len([]rune(st.args[i].name))
	st.count++
}

// nextValueToken reports the index of the token usable as the value for a
// named argument found at index i: the immediately following token, provided
// it is an unconsumed plain word before the separator.
func (st *state) nextValueToken(i int) (int, bool) {
	j := i + 1
	if j >= len(st.args) || st.consumed[j] {
		return 0, false
	}
	if st.args[j].kind != argWord || st.args[j].posOnly {
		return 0, false
	}
	return j, true
}

// takeWord claims the leftmost positional-eligible token. Strict positionals
// only consider tokens after the "--" separator.
func (st *state) takeWord(strict bool) (string, bool) {
	for i, a := range st.args {
		if st.consumed[i] || a.kind != argWord {
			continue
		}
		if strict && !a.posOnly {
			continue
		}
		st.claim(i)
		return a.raw, true
	}
	return "", false
}

// nextWord reports the leftmost unconsumed word token without claiming it.
// Used by the command dispatcher's scanning state.
func (st *state) nextWord() (int, bool) {
	for i, a := range st.args {
		if st.consumed[i] || a.kind != argWord {
			continue
		}
		return i, true
	}
	return 0, false
}

// nextRaw reports the leftmost wholly unclaimed token of any kind.
func (st *state) nextRaw() (int, bool) {
	for i := range st.args {
		if !st.consumed[i] && st.cluster[i] == 0 {
			return i, true
		}
	}
	return 0, false
}

// subState builds a fresh pool from the unconsumed tokens after index i, for
// handing off to a nested command parser. It returns the new state and the
// outer indexes it was built from.
func (st *state) subState(i int) (*state, []int) {
	var idxs []int
	var args []arg
	var cluster []int
	for j := i + 1; j < len(st.args); j++ {
		if st.consumed[j] {
			continue
		}
		idxs = append(idxs, j)
		args = append(args, st.args[j])
		cluster = append(cluster, st.cluster[j])
	}
	return &state{
		args:     args,
		consumed: make([]bool, len(args)),
		cluster:  cluster,
		lookup:   st.lookup,
	}, idxs
}

// leftover reports the leftmost token that is not fully consumed. For a
// partially claimed short cluster it reports the remaining letters.
func (st *state) leftover() (string, bool) {
	for i, a := range st.args {
		if st.consumed[i] {
			continue
		}
		if a.kind == argShort && st.cluster[i] > 0 {
			rest := []rune(a.name)[st.cluster[i]:]
			return "-" + string(rest), true
		}
		return a.raw, true
	}
	return "", false
}

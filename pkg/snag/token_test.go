// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitArgsForms(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name string
		args []string
		want []arg
	}{
		{
			name: "long flag",
			args: []string{"--verbose"},
			want: []arg{{raw: "--verbose", name: "verbose", kind: argLong}},
		},
		{
			name: "long with joined value",
			args: []string{"--km=10"},
			want: []arg{{raw: "--km=10", name: "km", value: strPtr("10"), kind: argLong}},
		},
		{
			name: "short cluster",
			args: []string{"-abc"},
			want: []arg{{raw: "-abc", name: "abc", kind: argShort}},
		},
		{
			name: "short with joined value",
			args: []string{"-s=100"},
			want: []arg{{raw: "-s=100", name: "s", value: strPtr("100"), kind: argShort}},
		},
		{
			name: "negative number is a word",
			args: []string{"-5", "-0.5"},
			want: []arg{
				{raw: "-5", kind: argWord},
				{raw: "-0.5", kind: argWord},
			},
		},
		{
			name: "lone dash is a word",
			args: []string{"-"},
			want: []arg{{raw: "-", kind: argWord}},
		},
		{
			name: "separator strips and tags the rest",
			args: []string{"a", "--", "--not-a-flag", "b"},
			want: []arg{
				{raw: "a", kind: argWord},
				{raw: "--not-a-flag", posOnly: true, kind: argWord},
				{raw: "b", posOnly: true, kind: argWord},
			},
		},
		{
			name: "second separator is a plain word",
			args: []string{"--", "--"},
			want: []arg{{raw: "--", posOnly: true, kind: argWord}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitArgs(tt.args)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(arg{})); diff != "" {
				t.Fatalf("splitArgs(%v) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestStateSaveRestore(t *testing.T) {
	st := newState([]string{"-ab", "x"}, nil)
	m := st.save()

	st.cluster[0] = 1
	st.consumed[1] = true
	st.count = 3

	st.restore(m)
	if st.cluster[0] != 0 {
		t.Fatalf("cluster[0] = %d, want 0", st.cluster[0])
	}
	if st.consumed[1] {
		t.Fatalf("consumed[1] = true, want false")
	}
	if st.count != 0 {
		t.Fatalf("count = %d, want 0", st.count)
	}
}

func TestLeftoverReportsClusterRemainder(t *testing.T) {
	st := newState([]string{"-ab"}, nil)
	found, err := st.takeFlag(Short('a'))
	if err != nil || !found {
		t.Fatalf("takeFlag(-a) = %v, %v, want found", found, err)
	}
	left, ok := st.leftover()
	if !ok || left != "-b" {
		t.Fatalf("leftover() = %q, %v, want %q, true", left, ok, "-b")
	}
}

func TestLeftoverReportsLeftmost(t *testing.T) {
	st := newState([]string{"a", "b", "c"}, nil)
	st.claim(1)
	left, ok := st.leftover()
	if !ok || left != "a" {
		t.Fatalf("leftover() = %q, %v, want %q, true", left, ok, "a")
	}
}

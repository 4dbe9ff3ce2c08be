// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

// Parser is one composable unit: invoked against the shared token pool it
// either consumes tokens and yields a value, fails hard with a reason, or
// reports soft absence (MissingError) without consuming anything.
//
// The method set is unexported: the variant set is fixed and every node is
// built through this package's constructors. Nodes are immutable once
// composed and safe to share across concurrent runs.
type Parser[T any] interface {
	run(st *state) (T, error)
	meta() *Meta
}

// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package dtinfer infers and checks types for a small functional language with
// dependent numeric types: sequence lengths are types of kind #, and arithmetic
// on them produces numeric constraints which are simplified locally and, when
// that is not enough, decided by an external Solver.
//
// The input is a name-resolved module (see package ast). The output is the
// module elaborated into explicitly typed terms (see package core): every
// polymorphic definition abstracts over its type parameters and constraints,
// and every use applies them.
//
//
// Supported Features:
//
//   * Hindley-Milner style inference with generalization over binding groups
//   * Type signatures, explicit instantiation by position or by name
//   * Numeric types with arithmetic and predicates (==, >=, fin, ...)
//   * Type classes for literals and arithmetic, with defaulting
//   * Records, tuples and sequences, selectors lifted through sequences and functions
//   * Type synonyms, newtypes, primitive types and module parameters
//   * Existential type variables scoped to a function body
//   * Submodules, and incremental use through NameSeeds
//
//
// Links:
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
package dtinfer

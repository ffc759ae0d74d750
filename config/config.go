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

// Package config holds the options recognized by the type checker.
package config

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

// Options control a single inference run.
type Options struct {
	// MonoBinds disables generalization of local bindings without a signature.
	MonoBinds bool `yaml:"mono_binds"`
	// CallStacks keeps call-stack information in elaborated terms.
	CallStacks bool `yaml:"call_stacks"`
	// SearchPath is passed through to the host; the checker does not interpret it.
	SearchPath []string `yaml:"search_path"`
}

// Default returns the default options: local bindings are generalized and call
// stacks are kept.
func Default() Options {
	return Options{CallStacks: true}
}

// Parse decodes YAML options. Keys which are not present keep their defaults.
func Parse(data []byte) (Options, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes YAML options from r. Unknown keys are rejected.
func Load(r io.Reader) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, err
	}
	return opts, nil
}

// Marshal encodes options as YAML.
func (o Options) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}

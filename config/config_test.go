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

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	opts, err := Parse([]byte("mono_binds: true\nsearch_path: [lib, vendor/lib]\n"))
	require.NoError(t, err)
	require.True(t, opts.MonoBinds)
	require.True(t, opts.CallStacks, "unset keys keep their defaults")
	require.Equal(t, []string{"lib", "vendor/lib"}, opts.SearchPath)
}

func TestLoadEmpty(t *testing.T) {
	opts, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), opts)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("mono_bind: true\n"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	in := Options{MonoBinds: true, SearchPath: []string{"a"}}
	data, err := in.Marshal()
	require.NoError(t, err)
	out, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

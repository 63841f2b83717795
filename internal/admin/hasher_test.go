// Copyright 2026 The Pipeboard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package admin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("123", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("124", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("123")
	require.NoError(t, err)
	second, err := h.Hash("123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("123", "not-a-hash")
	assert.Error(t, err)

	_, err = h.Verify("123", "$bcrypt$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA")
	assert.Error(t, err)
}

func TestStaticVerifier_RequiresCredentials(t *testing.T) {
	_, err := NewStaticVerifier("", "123", testHasher())
	assert.Error(t, err)

	_, err = NewStaticVerifier("admin", "", testHasher())
	assert.Error(t, err)
}

func TestStaticVerifier_Verify(t *testing.T) {
	v := testVerifier(t)

	ok, err := v.Verify("admin", "123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("admin", "123 ")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify("Admin", "123")
	require.NoError(t, err)
	assert.False(t, ok)
}

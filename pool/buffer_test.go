/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPool_GetPut(t *testing.T) {
	p := NewBufferPool()
	buf := p.Get()
	require.NotNil(t, buf)

	buf.WriteString("<iq/>")
	p.Put(buf)

	buf2 := p.Get()
	require.Equal(t, 0, buf2.Len())
}

func TestBufferPool_DiscardLarge(t *testing.T) {
	p := NewBufferPool()
	large := bytes.NewBuffer(make([]byte, 0, maxPooledBufferSize*2))
	large.WriteString("payload")
	p.Put(large)

	// the discarded buffer keeps its content
	require.Equal(t, "payload", large.String())
}

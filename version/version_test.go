/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package version_test

import (
	"testing"

	"github.com/atalk/xmppcore/version"
	"github.com/stretchr/testify/require"
)

func TestVersion_Parse(t *testing.T) {
	v, err := version.Parse("v2.11.0")
	require.Nil(t, err)
	require.Equal(t, "2.11.0", v.String())
	require.Equal(t, "0.1.0", version.ApplicationVersion.String())

	for _, bad := range []string{"", "1.2", "1.2.3.4", "1.x.3", "1.-2.3"} {
		_, err := version.Parse(bad)
		require.NotNil(t, err, bad)
	}
	require.Panics(t, func() { version.MustParse("one.two.three") })
}

func TestVersion_Compare(t *testing.T) {
	base := version.NewVersion(1, 9, 2)

	tcs := []struct {
		v        *version.SemanticVersion
		expected int
	}{
		{version.NewVersion(1, 9, 2), 0},
		{version.NewVersion(1, 9, 3), 1},
		{version.NewVersion(1, 10, 0), 1},
		{version.NewVersion(2, 0, 0), 1},
		{version.NewVersion(1, 9, 1), -1},
		{version.NewVersion(1, 8, 9), -1},
		{version.NewVersion(0, 99, 99), -1},
	}
	for _, tc := range tcs {
		require.Equal(t, tc.expected, tc.v.Compare(base), tc.v.String())
	}
}

func TestVersion_Predicates(t *testing.T) {
	older := version.NewVersion(0, 9, 0)
	newer := version.NewVersion(1, 0, 0)

	require.True(t, older.IsLess(newer))
	require.True(t, older.IsLessOrEqual(older))
	require.True(t, newer.IsGreater(older))
	require.True(t, newer.IsGreaterOrEqual(newer))
	require.True(t, newer.IsEqual(version.NewVersion(1, 0, 0)))
	require.False(t, newer.IsLess(newer))
	require.False(t, older.IsGreater(older))
}

package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewKATLog(t *testing.T) {
	const (
		dim         = 3
		entryRange  = 5
		numContexts = 10
		bound       = 3
		initialSeed = 1729
	)

	dir := t.TempDir()
	kl, err := NewKATLog(dir, dim)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(kl.Path))
	require.True(t, strings.HasPrefix(filepath.Base(kl.Path), "lll-kat-dim3-"))
	require.True(t, strings.HasSuffix(kl.Path, ".jsonl"))

	// Run and report contexts
	expected := make([]*LatticeContext, numContexts)
	for i := 0; i < numContexts; i++ {
		var lc *LatticeContext
		lc, err = NewLatticeContext(dim, entryRange, int64(initialSeed+i))
		require.NoError(t, err)
		require.NoError(t, lc.Run(bound))
		require.NoError(t, kl.Report(lc))
		expected[i] = lc
	}
	require.Equal(t, numContexts, kl.NumReports())
	require.NoError(t, kl.Close())

	// Read them back
	var actual []*LatticeContext
	actual, err = ReadKATLog(kl.Path)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func TestReadKATLog_Errors(t *testing.T) {
	_, err := ReadKATLog(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "corrupt.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"dimension\": 2}\nnot json\n"), 0o600))
	_, err = ReadKATLog(path)
	require.Error(t, err)

	// An empty log holds no contexts
	path = filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	var actual []*LatticeContext
	actual, err = ReadKATLog(path)
	require.NoError(t, err)
	require.Empty(t, actual)

	_, err = NewKATLog(filepath.Join(t.TempDir(), "no-such-dir"), 2)
	require.Error(t, err)
}

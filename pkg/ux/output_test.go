// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"bytes"
	"math/big"
	"sync"
	"testing"
	"time"

	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a buffer written from a watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestUserLogOutput(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	ul := NewUserLogWithWriter(luxlog.NewNoOpLogger(), &buf)

	ul.PrintToUser("deploying %s", "token")
	ul.GreenCheckmarkToUser("done")
	ul.RedXToUser("failed: %d", 3)

	out := buf.String()
	require.Contains(out, "deploying token\n")
	require.Contains(out, "✓ done\n")
	require.Contains(out, "✗ failed: 3\n")
}

func TestStepTracker(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer
	ul := NewUserLogWithWriter(luxlog.NewNoOpLogger(), &buf)

	st := NewStepTracker(ul, time.Hour)
	st.Start("Deploying token")
	require.False(st.CheckWarn())
	st.Complete("0xabc")
	require.Contains(buf.String(), "Deploying token...\n")
	require.Regexp(`✓ Deploying token \(\d+\.\ds\) - 0xabc`, buf.String())

	buf.Reset()
	st = NewStepTracker(ul, 0)
	st.Start("Deploying sale")
	time.Sleep(time.Millisecond)
	require.True(st.CheckWarn())
	require.False(st.CheckWarn())
	st.Failed("reverted")
	require.Contains(buf.String(), "Warning: Deploying sale taking longer than expected")
	require.Contains(buf.String(), "FAILED: reverted")
}

func TestConvertToStringWithThousandSeparator(t *testing.T) {
	require.Equal(t, "1_234_567", ConvertToStringWithThousandSeparator(1234567))
	require.Equal(t, "12", ConvertToStringWithThousandSeparator(12))
}

func TestFormatEther(t *testing.T) {
	ether := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	tests := []struct {
		name string
		wei  *big.Int
		want string
	}{
		{"nil", nil, "0"},
		{"zero", big.NewInt(0), "0"},
		{"one ether", ether, "1"},
		{"fraction", big.NewInt(2_000_000_000_000_000), "0.002"},
		{"large", new(big.Int).Mul(ether, big.NewInt(1_000_000)), "1_000_000"},
		{"mixed", new(big.Int).Add(new(big.Int).Mul(ether, big.NewInt(1234)), big.NewInt(500_000_000_000_000_000)), "1_234.5"},
		{"negative", new(big.Int).Neg(big.NewInt(1_500_000_000_000_000_000)), "-1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatEther(tt.wei))
		})
	}
}

package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCloseIsIdempotent(t *testing.T) {
	nt := &NATSTransport{logger: zap.NewNop()}

	require.NoError(t, nt.Close())
	require.NoError(t, nt.Close())
	require.Nil(t, nt.subs)
}

package idx_test

import (
	"testing"

	"github.com/eventdesk/registry/pkg/idx"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	// Canonical ULID form.
	_, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
}

func TestNew_Monotonic(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String(), "ids generated later sort later")
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Path(t *testing.T) {
	k := Key{Run: "run", Classifier: "NaiveBayes", Label: "test"}
	assert.Equal(t, "NaiveBayes_run_test", k.Path())
}

func TestShards(t *testing.T) {
	k := Key{Run: "1", Classifier: "NNge", Label: "test"}

	type test struct {
		shard Shard
		found bool
	}

	tests := map[string]test{
		"void": {
			shard: VoidShard(ReportDir),
		},
		"mock": {
			shard: MockShard(),
			found: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store, err := tt.shard("NNge")
			require.NoError(t, err)

			err = store.Load(k, nil)
			assert.ErrorIs(t, err, NotFoundErr)

			require.NoError(t, store.Store(k, "report"))
			err = store.Load(k, nil)
			if tt.found {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, NotFoundErr)
			}
		})
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"github.com/semka95/authors/cmd"
	"github.com/semka95/authors/validation"
)

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"seed", "extra"}} {
		err := run(args, new(bytes.Buffer), zap.NewNop())
		assert.EqualError(t, err, usage)
	}

	t.Run("unknown command", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lookup:\n  timeout: 2\nmongo:\n  name: authors\n  host_port: 127.0.0.1:1\n"), 0o600))
		t.Setenv(cmd.ConfigEnv, path)

		start := time.Now()
		err := run([]string{"bogus"}, new(bytes.Buffer), zap.NewNop())

		assert.EqualError(t, err, `unknown command "bogus", `+usage)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestSeed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	v, err := validation.NewAppValidator()
	require.NoError(t, err)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 3},
			{Key: "nModified", Value: 3},
		})

		err := seed(context.Background(), mt.DB, v, zap.NewNop())

		require.NoError(mt, err)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key",
		}))

		err := seed(context.Background(), mt.DB, v, zap.NewNop())

		assert.ErrorContains(mt, err, "author publish error")
	})
}

func TestStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "host", Value: "mongodb"}))
		out := new(bytes.Buffer)

		err := status(context.Background(), mt.DB, out)

		require.NoError(mt, err)
		assert.Contains(mt, out.String(), `"host": "mongodb"`)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
			Name:    "Unauthorized",
		}))

		err := status(context.Background(), mt.DB, new(bytes.Buffer))

		assert.EqualError(mt, err, "status check failed: (Unauthorized) unauthorized")
	})
}

package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/Rrens/content-creator-bot/internal/storage/mongo"
	"github.com/Rrens/content-creator-bot/internal/storage/storetest"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Requires MongoDB - set MONGO_TEST_URI to run")
	}

	ctx := context.Background()
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	coll := client.Database("contentbot_test").Collection("kv_entries")
	_, err = coll.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)

	store := mongo.NewStore(client, "contentbot_test", "kv_entries")
	defer store.Close()

	storetest.Run(t, store)
}

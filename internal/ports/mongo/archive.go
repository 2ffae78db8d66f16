package mongo

import (
	"context"
	"fmt"
	"time"

	"thegame/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type Options struct {
	URL         string
	Database    string
	Collection  string
	MaxPoolSize int
}

// Archive stores finished games in a MongoDB collection.
type Archive struct {
	cli  *mongo.Client
	coll *mongo.Collection
}

// Connect dials and pings the server before returning.
func Connect(ctx context.Context, opts Options) (*Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(opts.URL)
	if opts.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(uint64(opts.MaxPoolSize))
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return &Archive{
		cli:  client,
		coll: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// SaveGame inserts one document per finished game.
func (a *Archive) SaveGame(ctx context.Context, record ports.GameRecord) error {
	if _, err := a.coll.InsertOne(ctx, gameDocument(record)); err != nil {
		return fmt.Errorf("insert game %s: %w", record.RoomID, err)
	}
	return nil
}

func (a *Archive) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return a.cli.Disconnect(ctx)
}

func gameDocument(record ports.GameRecord) bson.M {
	players := record.Players
	if players == nil {
		players = []string{}
	}
	doc := bson.M{
		"roomId":         record.RoomID,
		"outcome":        record.Outcome,
		"won":            record.Won,
		"players":        players,
		"playerCount":    len(players),
		"cardsRemaining": record.CardsRemaining,
		"startedAt":      record.StartedAt.UTC(),
		"endedAt":        record.EndedAt.UTC(),
		"durationSec":    int64(record.EndedAt.Sub(record.StartedAt).Seconds()),
	}
	if record.MatchID != "" {
		doc["matchId"] = record.MatchID
	}
	return doc
}

var _ ports.GameArchive = (*Archive)(nil)

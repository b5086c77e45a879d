// Package mongostore implements repositories.Store on MongoDB.
//
// Listers embed their listings as subdocuments and user profiles carry
// savedListingIds as an array. All identifiers are UUID strings stored in _id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names
const (
	ColAccounts = "accounts"
	ColAdmins   = "admins"
	ColUsers    = "users"
	ColListers  = "listers"
	ColReports  = "reports"
)

// Store implements repositories.Store on a MongoDB database
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	log          *zap.Logger
}

var _ repositories.Store = (*Store)(nil)

// NewStore connects, pings and ensures indexes.
// transactions requires a replica set; without it paired writes run sequentially.
func NewStore(ctx context.Context, uri, dbName string, transactions bool, log *zap.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{
		client:       client,
		db:           client.Database(dbName),
		transactions: transactions,
		log:          log,
	}

	if err := s.ensureIndexes(connectCtx); err != nil {
		log.Warn("mongostore: ensure indexes failed", zap.Error(err))
	}

	return s, nil
}

func (s *Store) Accounts() repositories.AccountRepository  { return accountRepo{s.col(ColAccounts)} }
func (s *Store) Admins() repositories.AdminRepository      { return adminRepo{s.col(ColAdmins)} }
func (s *Store) Users() repositories.UserProfileRepository { return userRepo{s.col(ColUsers)} }
func (s *Store) Listers() repositories.ListerRepository    { return listerRepo{s.col(ColListers)} }
func (s *Store) Reports() repositories.ReportRepository    { return reportRepo{s.col(ColReports)} }

// WithinTransaction runs fn inside a session transaction. Calls made while a
// session is already attached to ctx join it.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if !s.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx, s)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongostore: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

// SupportsTransactions reports whether WithinTransaction is atomic
func (s *Store) SupportsTransactions() bool { return s.transactions }

// Ping checks the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColAccounts, bson.D{{Key: "username", Value: 1}}, true},
		{ColAdmins, bson.D{{Key: "username", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},
		{ColListers, bson.D{{Key: "username", Value: 1}}, true},
		{ColListers, bson.D{{Key: "listings._id", Value: 1}}, false},
		{ColReports, bson.D{{Key: "reportedAt", Value: -1}}, false},
	}

	for _, ix := range indexes {
		model := mongo.IndexModel{Keys: ix.keys}
		if ix.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(ix.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("index %v on %s: %w", ix.keys, ix.col, err)
		}
	}
	return nil
}

// wrapError maps driver errors to domain errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	return results, cursor.Err()
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err)
}

func updateOne(ctx context.Context, col *mongo.Collection, filter, update bson.D) error {
	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, filter bson.D) error {
	res, err := col.DeleteOne(ctx, filter)
	if err != nil {
		return wrapError(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func byUsername(username string) bson.D {
	return bson.D{{Key: "username", Value: username}}
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func stamp(created, updated *time.Time) {
	t := now()
	if created.IsZero() {
		*created = t
	}
	if updated.IsZero() {
		*updated = t
	}
}

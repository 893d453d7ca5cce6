package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"sgf_review/internal/domain"
	apperr "sgf_review/internal/errors"
)

// ArchiveRepository stores finished analyses in the "analyses" collection.
type ArchiveRepository struct {
	mongo *mongo.Database
	log   *zap.SugaredLogger
}

func NewArchiveRepository(mongo *mongo.Database, log *zap.SugaredLogger) *ArchiveRepository {
	return &ArchiveRepository{mongo: mongo, log: log}
}

func (a *ArchiveRepository) Put(ctx context.Context, analysis domain.ArchivedAnalysis) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := a.mongo.Collection("analyses")
	if _, err := collection.InsertOne(ctx, analysis); err != nil {
		a.log.Errorf("failed to insert analysis: %v", err)
		return err
	}
	a.log.Infof("analysis archived with id %s", analysis.ID)
	return nil
}

func (a *ArchiveRepository) GetByID(ctx context.Context, id string) (domain.ArchivedAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := a.mongo.Collection("analyses")
	var found domain.ArchivedAnalysis
	err := collection.FindOne(ctx, bson.M{"id": id}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return found, apperr.ErrRecordNotFound
	} else if err != nil {
		a.log.Error(err)
		return found, err
	}
	return found, nil
}

// ListByPlayer returns every archived analysis where the named player held
// either color; an empty name lists everything.
func (a *ArchiveRepository) ListByPlayer(ctx context.Context, name string) ([]domain.ArchivedAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if name != "" {
		filter = bson.M{
			"$or": []bson.M{
				{"player_black": name},
				{"player_white": name},
			},
		}
	}

	collection := a.mongo.Collection("analyses")
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		a.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.ArchivedAnalysis
	for cursor.Next(ctx) {
		var analysis domain.ArchivedAnalysis
		if err := cursor.Decode(&analysis); err != nil {
			a.log.Error(err)
			return result, err
		}
		result = append(result, analysis)
	}
	return result, nil
}

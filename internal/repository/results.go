package repository

import (
	"context"
	"fmt"

	"github.com/quillcheck/veridoc/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const resultsCollection = "plagiarism_results"

type ResultsRepository struct {
	mongoRepo *MongoRepository
}

func NewResultsRepository(mongoRepo *MongoRepository) *ResultsRepository {
	return &ResultsRepository{
		mongoRepo: mongoRepo,
	}
}

func (r *ResultsRepository) InsertResult(ctx context.Context, result *models.PlagiarismResult) error {
	err := r.mongoRepo.InsertOne(ctx, resultsCollection, result)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

func (r *ResultsRepository) GetResultByID(ctx context.Context, resultID string) (*models.PlagiarismResult, error) {
	filter := bson.M{"id": resultID}

	var result models.PlagiarismResult
	err := r.mongoRepo.FindOne(ctx, resultsCollection, filter).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result: %w", err)
	}

	return &result, nil
}

func (r *ResultsRepository) GetLatestResultByDocumentID(ctx context.Context, documentID string) (*models.PlagiarismResult, error) {
	filter := bson.M{"documentId": documentID}
	opts := options.FindOne().SetSort(bson.D{{Key: "checkedAt", Value: -1}})

	var result models.PlagiarismResult
	err := r.mongoRepo.FindOne(ctx, resultsCollection, filter, opts).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result: %w", err)
	}

	return &result, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/quillcheck/veridoc/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const documentsCollection = "user_documents"

type DocumentsRepository struct {
	mongoRepo *MongoRepository
}

func NewDocumentsRepository(mongoRepo *MongoRepository) *DocumentsRepository {
	return &DocumentsRepository{
		mongoRepo: mongoRepo,
	}
}

func (r *DocumentsRepository) InsertDocument(ctx context.Context, doc *models.UserDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	err := r.mongoRepo.InsertOne(ctx, documentsCollection, doc)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

func (r *DocumentsRepository) GetDocumentsByUserID(ctx context.Context, userID string) ([]models.UserDocument, error) {
	filter := bson.M{"userId": userID}

	cursor, err := r.mongoRepo.FindMany(ctx, documentsCollection, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var documents []models.UserDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return documents, nil
}

func (r *DocumentsRepository) GetDocumentByID(ctx context.Context, documentID string) (*models.UserDocument, error) {
	filter := bson.M{"id": documentID}

	var doc models.UserDocument
	err := r.mongoRepo.FindOne(ctx, documentsCollection, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

func (r *DocumentsRepository) CountDocumentsByUserID(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"userId": userID}

	count, err := r.mongoRepo.CountDocuments(ctx, documentsCollection, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

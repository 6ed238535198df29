package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"hirestack/recruit-api/internal/apperr"
)

// ResumeIndex stores embedded resume chunks so ranking can retrieve the
// most relevant excerpts for a candidate instead of shipping whole resumes
// into the prompt.
type ResumeIndex interface {
	InitCollection() error
	UpsertChunk(ctx context.Context, documentID string, chunkText string, embedding []float32) error
	SearchRelevant(ctx context.Context, queryEmbedding []float32, documentID string, limit int) ([]SearchResult, error)
	DeleteDocument(ctx context.Context, documentID string) error
}

type SearchResult struct {
	ID    string
	Score float32
	Text  string
}

type resumeIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewResumeIndex(urlStr, apiKey, collectionName string) (ResumeIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC endpoint; the REST port in configs is usually 6333, gRPC 6334.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &resumeIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

func (q *resumeIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("qdrant collection %q created", q.collectionName)
	return nil
}

func (q *resumeIndex) UpsertChunk(ctx context.Context, documentID string, chunkText string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.New().String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"document_id": documentID,
			"text":        chunkText,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return apperr.Wrap(apperr.ErrUpstreamUnavailable, "failed to upsert chunk: %v", err)
	}
	return nil
}

func (q *resumeIndex) SearchRelevant(ctx context.Context, queryEmbedding []float32, documentID string, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if documentID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrUpstreamUnavailable, "failed to search: %v", err)
	}

	var results []SearchResult
	for _, point := range points {
		result := SearchResult{Score: point.Score}
		if id, ok := point.Payload["document_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}
		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (q *resumeIndex) DeleteDocument(ctx context.Context, documentID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return apperr.Wrap(apperr.ErrUpstreamUnavailable, "failed to delete document chunks: %v", err)
	}
	return nil
}

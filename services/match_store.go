package services

import (
	"context"
	"fmt"

	"github.com/Barbaracwx/telegram-sportsfinder/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchStore is the match-record persistence contract. Records are
// inserted once, updated in place, and never deleted.
type MatchStore interface {
	InsertMatch(ctx context.Context, match models.Match) error
	// GetMatch returns the record for matchID, or nil when none exists.
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	// FindActiveMatchForParticipant returns the single active match
	// referencing userID on either side, or nil.
	FindActiveMatchForParticipant(ctx context.Context, userID string) (*models.Match, error)
	UpdateMatch(ctx context.Context, matchID string, fields map[string]interface{}) error
}

type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func (ms *DynamoMatchStore) key(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

// InsertMatch inserts a new match record
func (ms *DynamoMatchStore) InsertMatch(ctx context.Context, match models.Match) error {
	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.MatchID, err)
	}
	return nil
}

// GetMatch retrieves a match record by id
func (ms *DynamoMatchStore) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, ms.key(matchID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match %s: %w", matchID, err)
	}
	return &match, nil
}

// FindActiveMatchForParticipant scans for the active match referencing
// a user on either side
func (ms *DynamoMatchStore) FindActiveMatchForParticipant(ctx context.Context, userID string) (*models.Match, error) {
	filterExpression := "#status = :active AND (userAId = :userId OR userBId = :userId)"
	values := map[string]types.AttributeValue{
		":active": &types.AttributeValueMemberS{Value: models.MatchStatusActive},
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#status": "status"}

	var matches []models.Match
	if err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable, filterExpression, values, names, nil, &matches); err != nil {
		return nil, fmt.Errorf("failed to find active match for %s: %w", userID, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// UpdateMatch sets the given fields on a match record
func (ms *DynamoMatchStore) UpdateMatch(ctx context.Context, matchID string, fields map[string]interface{}) error {
	updateExpression, values, names, err := buildSetExpression(fields)
	if err != nil {
		return err
	}

	_, err = ms.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, ms.key(matchID), values, names)
	return err
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Barbaracwx/telegram-sportsfinder/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileStore is the user-profile persistence contract the matching
// engine and lifecycle controller depend on. DynamoProfileStore is the
// production implementation; tests inject an in-memory fake.
type ProfileStore interface {
	// CreateUser inserts a new profile, replacing any previous item
	// under the same id.
	CreateUser(ctx context.Context, user models.User) error
	// GetUser returns the profile for id, or nil when none exists.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateUser sets the given fields on one profile.
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error
	// UpdateUsers sets the same fields on every profile in ids.
	UpdateUsers(ctx context.Context, ids []string, fields map[string]interface{}) error
	// ListWaitingBySport returns users flagged as waiting for sport,
	// excluding excludeID, in profile-creation order.
	ListWaitingBySport(ctx context.Context, sport, excludeID string) ([]models.User, error)
	// MarkWaiting flags a user as waiting for sport, but only while
	// they are unmatched; a user matched in the meantime fails with
	// ErrAlreadyMatched.
	MarkWaiting(ctx context.Context, id, sport string) error
	// ClaimForMatch flips a user from waiting to matched, but only if
	// the user is still waiting; otherwise it fails with ErrNotWaiting.
	ClaimForMatch(ctx context.Context, id string) error
	// ReleaseClaim rolls a half-committed claim back to waiting.
	ReleaseClaim(ctx context.Context, id string) error
}

type DynamoProfileStore struct {
	Dynamo *DynamoService
}

func (ps *DynamoProfileStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"telegramId": &types.AttributeValueMemberS{Value: id},
	}
}

// CreateUser inserts a new user profile
func (ps *DynamoProfileStore) CreateUser(ctx context.Context, user models.User) error {
	return ps.Dynamo.PutItem(ctx, models.UsersTable, user)
}

// GetUser retrieves a user profile by Telegram id
func (ps *DynamoProfileStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	item, err := ps.Dynamo.GetItem(ctx, models.UsersTable, ps.key(id))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user %s: %w", id, err)
	}
	return &user, nil
}

// UpdateUser updates an existing user profile
func (ps *DynamoProfileStore) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error {
	updateExpression, values, names, err := buildSetExpression(fields)
	if err != nil {
		return err
	}

	_, err = ps.Dynamo.UpdateItem(ctx, models.UsersTable, updateExpression, ps.key(id), values, names)
	return err
}

// UpdateUsers applies the same field set to several profiles. DynamoDB
// has no multi-item update expression, so this is one update per id.
func (ps *DynamoProfileStore) UpdateUsers(ctx context.Context, ids []string, fields map[string]interface{}) error {
	for _, id := range ids {
		if err := ps.UpdateUser(ctx, id, fields); err != nil {
			return fmt.Errorf("failed to update user %s: %w", id, err)
		}
	}
	return nil
}

// ListWaitingBySport scans for users waiting on the same sport
func (ps *DynamoProfileStore) ListWaitingBySport(ctx context.Context, sport, excludeID string) ([]models.User, error) {
	filterExpression := "wantToBeMatched = :waiting AND selectedSport = :sport AND telegramId <> :me"
	values := map[string]types.AttributeValue{
		":waiting": &types.AttributeValueMemberBOOL{Value: true},
		":sport":   &types.AttributeValueMemberS{Value: sport},
		":me":      &types.AttributeValueMemberS{Value: excludeID},
	}

	var users []models.User
	if err := ps.Dynamo.ScanWithFilter(ctx, models.UsersTable, filterExpression, values, nil, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list waiting users for %s: %w", sport, err)
	}

	// Scan order is not stable; creation order keeps the first-fit
	// candidate walk reproducible.
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt < users[j].CreatedAt
	})
	return users, nil
}

// MarkWaiting makes a user discoverable for sport. The unmatched
// condition keeps a user who got matched between the precondition
// check and this write from ending up both matched and waiting.
func (ps *DynamoProfileStore) MarkWaiting(ctx context.Context, id, sport string) error {
	err := ps.Dynamo.UpdateItemWithCondition(ctx, models.UsersTable,
		"SET wantToBeMatched = :waiting, selectedSport = :sport",
		"attribute_not_exists(isMatched) OR isMatched = :notMatched",
		ps.key(id),
		map[string]types.AttributeValue{
			":waiting":    &types.AttributeValueMemberBOOL{Value: true},
			":sport":      &types.AttributeValueMemberS{Value: sport},
			":notMatched": &types.AttributeValueMemberBOOL{Value: false},
		}, nil,
	)
	if errors.Is(err, ErrConditionFailed) {
		return ErrAlreadyMatched
	}
	return err
}

// ClaimForMatch marks a user as matched only while they are still in
// the waiting state. Whichever concurrent caller commits first wins;
// the loser sees ErrNotWaiting.
func (ps *DynamoProfileStore) ClaimForMatch(ctx context.Context, id string) error {
	err := ps.Dynamo.UpdateItemWithCondition(ctx, models.UsersTable,
		"SET isMatched = :matched, wantToBeMatched = :notWaiting",
		"wantToBeMatched = :waiting AND (attribute_not_exists(isMatched) OR isMatched = :notMatched)",
		ps.key(id),
		map[string]types.AttributeValue{
			":matched":    &types.AttributeValueMemberBOOL{Value: true},
			":notWaiting": &types.AttributeValueMemberBOOL{Value: false},
			":waiting":    &types.AttributeValueMemberBOOL{Value: true},
			":notMatched": &types.AttributeValueMemberBOOL{Value: false},
		}, nil,
	)
	if errors.Is(err, ErrConditionFailed) {
		return ErrNotWaiting
	}
	return err
}

// ReleaseClaim returns a user to the waiting state
func (ps *DynamoProfileStore) ReleaseClaim(ctx context.Context, id string) error {
	return ps.UpdateUser(ctx, id, map[string]interface{}{
		"isMatched":       false,
		"wantToBeMatched": true,
	})
}

// buildSetExpression turns a field map into a SET update expression
// with marshaled values and name placeholders.
func buildSetExpression(fields map[string]interface{}) (string, map[string]types.AttributeValue, map[string]string, error) {
	if len(fields) == 0 {
		return "", nil, nil, fmt.Errorf("no fields to update")
	}

	updateExpression := "SET"
	values := make(map[string]types.AttributeValue, len(fields))
	names := make(map[string]string, len(fields))

	for k, v := range fields {
		marshaled, err := attributevalue.Marshal(v)
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal field %s: %w", k, err)
		}
		updateExpression += " #" + k + " = :" + k + ","
		values[":"+k] = marshaled
		names["#"+k] = k
	}

	return updateExpression[:len(updateExpression)-1], values, names, nil
}

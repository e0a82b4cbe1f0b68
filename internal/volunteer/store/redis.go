package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

const (
	volunteerKeyPrefix = "hmc:volunteer:"
	emailKeyPrefix     = "hmc:volunteer-email:"
	volunteerCountKey  = "hmc:volunteer-count"
)

// RedisStore keeps each profile as a JSON document. Training writes use
// WATCH/MULTI so a concurrent writer aborts the transaction.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisVolunteer struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Role            models.Role             `json:"role"`
	Training        models.Record           `json:"training"`
	BackgroundCheck vmodels.BackgroundCheck `json:"background_check"`
	Weekdays        []time.Weekday          `json:"weekdays"`
	Blackouts       []string                `json:"blackout_dates"`
	Source          vmodels.Source          `json:"source"`
	Version         int64                   `json:"version"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func volunteerKey(volunteerID id.VolunteerID) string { return volunteerKeyPrefix + volunteerID.String() }
func emailKey(email string) string                   { return emailKeyPrefix + strings.ToLower(email) }

// Create stores a new profile. A taken id or email is sentinel.ErrConflict.
func (s *RedisStore) Create(ctx context.Context, v *vmodels.Volunteer) error {
	doc, err := encodeVolunteer(v)
	if err != nil {
		return err
	}
	vKey, eKey := volunteerKey(v.ID), emailKey(v.Email)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, vKey, eKey).Result()
		if err != nil {
			return fmt.Errorf("check volunteer keys: %w", err)
		}
		if taken > 0 {
			return sentinel.ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, vKey, doc, 0)
			pipe.Set(ctx, eKey, v.ID.String(), 0)
			pipe.Incr(ctx, volunteerCountKey)
			return nil
		})
		return err
	}, vKey, eKey)
	if errors.Is(err, redis.TxFailedErr) {
		return sentinel.ErrConflict
	}
	if err != nil && !errors.Is(err, sentinel.ErrConflict) {
		return fmt.Errorf("create volunteer: %w", err)
	}
	return err
}

func (s *RedisStore) FindByID(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error) {
	data, err := s.client.Get(ctx, volunteerKey(volunteerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find volunteer by id: %w", err)
	}
	return decodeVolunteer(data)
}

// UpdateTraining replaces the training record if the stored version still
// equals expectedVersion, and returns the updated profile.
func (s *RedisStore) UpdateTraining(ctx context.Context, volunteerID id.VolunteerID, expectedVersion int64, record models.Record) (*vmodels.Volunteer, error) {
	key := volunteerKey(volunteerID)
	var updated *vmodels.Volunteer

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("load volunteer: %w", err)
		}
		current, err := decodeVolunteer(data)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return sentinel.ErrConflict
		}

		current.Training = record.Clone()
		current.Version++
		current.UpdatedAt = requestcontext.Now(ctx)
		doc, err := encodeVolunteer(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			return nil
		})
		if err == nil {
			updated = current
		}
		return err
	}, key)

	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, redis.TxFailedErr):
		return nil, sentinel.ErrConflict
	case errors.Is(err, sentinel.ErrConflict), errors.Is(err, sentinel.ErrNotFound):
		return nil, err
	default:
		return nil, fmt.Errorf("update volunteer training: %w", err)
	}
}

// Count returns the number of stored profiles.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, volunteerCountKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count volunteers: %w", err)
	}
	return n, nil
}

func encodeVolunteer(v *vmodels.Volunteer) ([]byte, error) {
	doc := redisVolunteer{
		ID:              v.ID.String(),
		Name:            v.Name,
		Email:           v.Email,
		Role:            v.Role,
		Training:        v.Training,
		BackgroundCheck: v.BackgroundCheck,
		Weekdays:        v.Availability.Weekdays,
		Blackouts:       dateStrings(v.Availability.Blackouts),
		Source:          v.Source,
		Version:         v.Version,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	if doc.Training.Completed == nil {
		doc.Training.Completed = []models.UnitID{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal volunteer: %w", err)
	}
	return data, nil
}

func decodeVolunteer(data []byte) (*vmodels.Volunteer, error) {
	var doc redisVolunteer
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal volunteer: %w", err)
	}
	volunteerID, err := id.ParseVolunteerID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("stored volunteer id: %w", err)
	}

	v := &vmodels.Volunteer{
		ID:              volunteerID,
		Name:            doc.Name,
		Email:           doc.Email,
		Role:            doc.Role,
		Training:        doc.Training,
		BackgroundCheck: doc.BackgroundCheck,
		Availability:    vmodels.Availability{Weekdays: doc.Weekdays},
		Source:          doc.Source,
		Version:         doc.Version,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	for _, d := range doc.Blackouts {
		day, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return nil, fmt.Errorf("parse blackout date %q: %w", d, err)
		}
		v.Availability.Blackouts = append(v.Availability.Blackouts, day)
	}
	return v, nil
}

package enforcer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"

	"github.com/cloudmeta/catalog/core"
)

var (
	client = new(http.Client)
)

// Repository fetches externally hosted rule documents with a short
// redis-backed cache in front.
type Repository interface {
	Get(ctx context.Context, url string) (core.RuleDocument, error)
}

type repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &repository{rdb}
}

func (r *repository) Get(ctx context.Context, url string) (core.RuleDocument, error) {
	ctx, span := tracer.Start(ctx, "Enforcer.Repository.Get")
	defer span.End()

	key := fmt.Sprintf("rules:%s", url)
	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var document core.RuleDocument
		err = json.Unmarshal([]byte(val), &document)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return core.RuleDocument{}, err
		}
		return document, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return core.RuleDocument{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return core.RuleDocument{}, errors.Wrap(err, "failed to fetch rule document")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.RuleDocument{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	jsonStr, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return core.RuleDocument{}, err
	}

	var document core.RuleDocument
	err = json.Unmarshal(jsonStr, &document)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return core.RuleDocument{}, errors.Wrap(err, "failed to parse rule document")
	}

	err = r.rdb.Set(ctx, key, jsonStr, 10*time.Minute).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return core.RuleDocument{}, err
	}

	return document, nil
}

package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"users-api/internal/domain/entity"
	repo "users-api/internal/domain/repository"
	"users-api/pkg/apperr"
	"users-api/pkg/helpers"
	"users-api/pkg/validation"
)

const (
	defaultPageSize = 10
	profileCacheTTL = 10 * time.Minute
)

// Service orchestrates credential checks, token issuance and user CRUD.
// Redis and Elasticsearch are optional; a nil client disables caching and
// search indexing without changing the core behavior.
type Service struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         repo,
		JWT:          jwt,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// TokenIssue is a freshly signed bearer token and its expiry.
type TokenIssue struct {
	Token     string
	ExpiresAt time.Time
}

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// Login validates email/password and issues a bearer token. An unknown email
// and a wrong password fail identically so callers cannot probe which one it
// was. remember selects the long-lived token TTL.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (*entity.User, TokenIssue, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, TokenIssue{}, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}
	if u == nil || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, TokenIssue{}, apperr.ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Issue(u.ID, remember)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token issuance failed")
		}
		return nil, TokenIssue{}, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}
	return u, TokenIssue{Token: token, ExpiresAt: exp}, nil
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	BirthDate string
	CPF       int64
}

// Register creates a user. The caller is already authenticated at the route
// level; this only enforces input quality and email uniqueness. The email is
// normalized to lower case before the existence check and the insert; the
// plaintext password never reaches the store.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if !validation.IsValidEmail(in.Email) {
		return nil, apperr.New(apperr.InvalidInput, "invalid email")
	}
	if !validation.IsStrongPassword(in.Password) {
		return nil, apperr.New(apperr.InvalidInput, validation.StrengthMessage)
	}

	email := strings.ToLower(in.Email)

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}
	if existing != nil {
		return nil, apperr.ErrEmailInUse
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}

	u := &entity.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		BirthDate:    in.BirthDate,
		CPF:          in.CPF,
	}
	if err := s.Repo.Create(u); err != nil {
		// The check above races with concurrent registrations; the unique
		// constraint is the authority.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperr.ErrEmailInUse
		}
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}

	_ = s.indexUser(ctx, u)
	return u, nil
}

// GetUser fetches a user by id through the optional Redis read-through cache.
func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(id), u, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache write failed")
		}
	}
	return u, nil
}

// UserPage is one page of the name-ordered user listing.
type UserPage struct {
	Users        []*entity.User
	HasMore      bool
	SkippedUsers int
	TotalUsers   int
}

// ListUsers returns up to count users ordered by name, skipping skip rows.
// Non-positive count and negative skip fall back to the defaults.
func (s *Service) ListUsers(ctx context.Context, count, skip int) (*UserPage, error) {
	if count <= 0 {
		count = defaultPageSize
	}
	if skip < 0 {
		skip = 0
	}

	users, err := s.Repo.List(count, skip)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}
	total, err := s.Repo.Count()
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "service unavailable", err)
	}

	return &UserPage{
		Users:        users,
		HasMore:      total-skip-count > 0,
		SkippedUsers: skip,
		TotalUsers:   total,
	}, nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = defaultPageSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

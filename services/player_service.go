package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/Dosada05/sinuca-cup/cache"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/Dosada05/sinuca-cup/storage"
	"github.com/google/uuid"
)

const podiumSize = 3

type RegisterPlayerInput struct {
	Name     string  `json:"name" validate:"required,min=3,max=255"`
	Sector   string  `json:"sector" validate:"required,min=2,max=255"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type UpdatePlayerInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Sector   *string `json:"sector,omitempty" validate:"omitempty,min=2,max=255"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Active   *bool   `json:"active,omitempty"`
}

type PlayerService interface {
	Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	List(ctx context.Context, activeOnly bool) ([]models.Player, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Player, error)
	UploadPhoto(ctx context.Context, id uuid.UUID, file io.Reader, contentType string) (*models.Player, error)

	// Ranking lists active players by points, wins and name.
	Ranking(ctx context.Context) ([]models.Player, error)
	Podium(ctx context.Context) ([]models.Player, error)
	Stats(ctx context.Context) (*models.LeagueStats, error)
}

type playerService struct {
	store    repositories.Store
	uploader storage.FileUploader
	ranking  cache.RankingCache
	logger   *slog.Logger
}

// NewPlayerService wires the registry. uploader may be nil when object storage is not configured.
func NewPlayerService(store repositories.Store, uploader storage.FileUploader, ranking cache.RankingCache, logger *slog.Logger) PlayerService {
	if ranking == nil {
		ranking = cache.NewNoopRankingCache()
	}
	return &playerService{store: store, uploader: uploader, ranking: ranking, logger: logger}
}

func (s *playerService) Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Sector = strings.TrimSpace(input.Sector)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:     input.Name,
		Sector:   input.Sector,
		PhotoURL: input.PhotoURL,
		Active:   true,
	}
	if err := s.store.Players().Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	s.invalidateRanking(ctx)
	s.logger.InfoContext(ctx, "player registered", slog.String("player_id", player.ID.String()))
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := s.store.Players().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context, activeOnly bool) ([]models.Player, error) {
	players, err := s.store.Players().List(ctx, repositories.ListPlayersFilter{ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if input.Sector != nil {
		trimmed := strings.TrimSpace(*input.Sector)
		input.Sector = &trimmed
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	player, err := s.store.Players().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Sector != nil {
		player.Sector = *input.Sector
	}
	if input.PhotoURL != nil {
		player.PhotoURL = input.PhotoURL
		player.PhotoKey = nil
	}
	if input.Active != nil {
		player.Active = *input.Active
	}

	if err := s.store.Players().Update(ctx, player); err != nil {
		return nil, mapRepoError(err)
	}
	s.invalidateRanking(ctx)
	return player, nil
}

func (s *playerService) Deactivate(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	inactive := false
	return s.Update(ctx, id, UpdatePlayerInput{Active: &inactive})
}

func (s *playerService) UploadPhoto(ctx context.Context, id uuid.UUID, file io.Reader, contentType string) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrPhotoStorageDisabled
	}
	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	player, err := s.store.Players().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	key := storage.PlayerPhotoKey(player.ID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo for player %s: %w", id, err)
	}

	oldKey := player.PhotoKey
	player.PhotoKey = &result.Key
	player.PhotoURL = &result.Location
	if err := s.store.Players().Update(ctx, player); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned photo", slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, mapRepoError(err)
	}

	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous photo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	s.invalidateRanking(ctx)
	return player, nil
}

func (s *playerService) Ranking(ctx context.Context) ([]models.Player, error) {
	cached, found, err := s.ranking.GetRanking(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "ranking cache read failed", slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	players, err := s.store.Players().List(ctx, repositories.ListPlayersFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking: %w", err)
	}

	if err := s.ranking.SetRanking(ctx, players); err != nil {
		s.logger.WarnContext(ctx, "ranking cache write failed", slog.Any("error", err))
	}
	return players, nil
}

func (s *playerService) Podium(ctx context.Context) ([]models.Player, error) {
	ranking, err := s.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	if len(ranking) > podiumSize {
		ranking = ranking[:podiumSize]
	}
	return ranking, nil
}

func (s *playerService) Stats(ctx context.Context) (*models.LeagueStats, error) {
	ranking, err := s.Ranking(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.LeagueStats{TotalPlayers: len(ranking)}
	appearances := 0
	for _, p := range ranking {
		stats.TotalPoints += p.PointsTotal
		stats.TotalWins += p.Wins
		appearances += p.Appearances
	}
	if stats.TotalPlayers > 0 {
		stats.AverageAppearances = math.Round(float64(appearances)/float64(stats.TotalPlayers)*10) / 10
	}
	return stats, nil
}

func (s *playerService) invalidateRanking(ctx context.Context) {
	if err := s.ranking.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "ranking cache invalidation failed", slog.Any("error", err))
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidPhotoType, contentType)
	}
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

const (
	// PhotoMaxBytes matches the store's single-document binary limit.
	PhotoMaxBytes = 16 << 20
	// PhotoHeight is the canonical height; width scales proportionally.
	PhotoHeight = 350
)

// PhotoCache is a best-effort read-through cache for stored photos. It is
// never authoritative; any cache failure falls back to the store.
type PhotoCache interface {
	Get(ctx context.Context, pickupID string) ([]byte, error)
	Set(ctx context.Context, pickupID string, photo []byte) error
	Invalidate(ctx context.Context, pickupID string) error
}

// PhotoService normalizes uploaded pickup photos to the canonical form
// (PNG, fixed height, proportional width) and stores them on the pickup.
type PhotoService struct {
	pickups ports.PickupRepository
	cache   PhotoCache
	log     zerolog.Logger
}

func NewPhotoService(pickups ports.PickupRepository, cache PhotoCache, log zerolog.Logger) *PhotoService {
	return &PhotoService{pickups: pickups, cache: cache, log: log}
}

func (s *PhotoService) Upload(ctx context.Context, pickupID, filename string, size int64, r io.Reader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, fmt.Errorf("%w: allowed formats are .jpg, .jpeg, .png", domain.ErrValidation)
	}
	if size > PhotoMaxBytes {
		return nil, fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrValidation, PhotoMaxBytes)
	}

	if _, err := s.pickups.FindByID(ctx, pickupID); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(io.LimitReader(r, PhotoMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image", domain.ErrValidation)
	}

	normalized := imaging.Resize(img, 0, PhotoHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, normalized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	if err := s.pickups.SetPhoto(ctx, pickupID, buf.Bytes()); err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, pickupID, buf.Bytes()); err != nil {
		s.log.Warn().Err(err).Str("pickup_id", pickupID).Msg("photo cache set failed")
	}

	s.log.Info().Str("pickup_id", pickupID).Int("bytes", buf.Len()).Msg("photo stored")
	return buf.Bytes(), nil
}

func (s *PhotoService) Get(ctx context.Context, pickupID string) ([]byte, error) {
	if photo, err := s.cache.Get(ctx, pickupID); err == nil && len(photo) > 0 {
		return photo, nil
	}

	photo, err := s.pickups.GetPhoto(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, pickupID, photo); err != nil {
		s.log.Warn().Err(err).Str("pickup_id", pickupID).Msg("photo cache set failed")
	}
	return photo, nil
}

func (s *PhotoService) Delete(ctx context.Context, pickupID string) error {
	if err := s.pickups.ClearPhoto(ctx, pickupID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, pickupID); err != nil {
		s.log.Warn().Err(err).Str("pickup_id", pickupID).Msg("photo cache invalidate failed")
	}
	return nil
}

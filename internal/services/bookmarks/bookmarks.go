// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package bookmarks implements group and link CRUD with per-user
// ownership and name validation. Ownership mismatches are reported as not
// found so resource existence never leaks across accounts.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linkman-app/linkman/internal/models"
	"github.com/linkman-app/linkman/internal/repository"
)

var (
	ErrInvalidName   = errors.New("name must be 1-50 characters")
	ErrInvalidURL    = errors.New("url must be 1-2000 characters")
	ErrDuplicateName = errors.New("a group with that name already exists")
)

const (
	maxNameLength = 50
	maxURLLength  = 2000
)

// Service implements group and link operations.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new bookmarks service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CleanName trims a group or link name and validates its length.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// CleanURL trims a URL and validates its length.
func CleanURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	if len(url) == 0 || len(url) > maxURLLength {
		return "", ErrInvalidURL
	}
	return url, nil
}

// ListGroups returns all groups of the user.
func (s *Service) ListGroups(ctx context.Context, userID int64) ([]models.Group, error) {
	return s.repo.ListGroups(ctx, userID)
}

// GetGroup returns a single group owned by the user.
func (s *Service) GetGroup(ctx context.Context, userID, groupID int64) (*models.Group, error) {
	return s.repo.GetGroup(ctx, userID, groupID)
}

// CreateGroup creates a group. The store's per-user unique constraint on
// the name is the authority; its violation maps to ErrDuplicateName.
func (s *Service) CreateGroup(ctx context.Context, userID int64, name string) (*models.Group, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.CreateGroup(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// RenameGroup changes a group's name and returns the updated group.
func (s *Service) RenameGroup(ctx context.Context, userID, groupID int64, name string) (*models.Group, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RenameGroup(ctx, userID, groupID, name); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return s.repo.GetGroup(ctx, userID, groupID)
}

// DeleteGroup deletes a group; its links cascade.
func (s *Service) DeleteGroup(ctx context.Context, userID, groupID int64) error {
	return s.repo.DeleteGroup(ctx, userID, groupID)
}

// ListLinks returns the user's links, optionally restricted to one group.
func (s *Service) ListLinks(ctx context.Context, userID int64, groupID *int64) ([]models.Link, error) {
	if groupID != nil {
		return s.repo.ListLinksByGroup(ctx, userID, *groupID)
	}
	return s.repo.ListLinks(ctx, userID)
}

// GetLink returns a single link owned by the user.
func (s *Service) GetLink(ctx context.Context, userID, linkID int64) (*models.Link, error) {
	return s.repo.GetLink(ctx, userID, linkID)
}

// CreateLink creates a link inside one of the user's groups.
func (s *Service) CreateLink(ctx context.Context, userID, groupID int64, name, url string) (*models.Link, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	url, err = CleanURL(url)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateLink(ctx, userID, groupID, name, url)
}

// LinkUpdate is the tagged variant selecting one of the two mutually
// exclusive update modes of a link.
type LinkUpdate interface {
	isLinkUpdate()
}

// Rename sets name, URL, and group of a link. The click counter is never
// touched.
type Rename struct {
	Name    string
	URL     string
	GroupID int64
}

// RecordClick increments the click counter by exactly one and touches
// nothing else.
type RecordClick struct{}

func (Rename) isLinkUpdate()      {}
func (RecordClick) isLinkUpdate() {}

// UpdateLink applies one update mode and returns the updated link.
func (s *Service) UpdateLink(ctx context.Context, userID, linkID int64, update LinkUpdate) (*models.Link, error) {
	switch u := update.(type) {
	case Rename:
		name, err := CleanName(u.Name)
		if err != nil {
			return nil, err
		}
		url, err := CleanURL(u.URL)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateLink(ctx, userID, linkID, u.GroupID, name, url); err != nil {
			return nil, err
		}
	case RecordClick:
		if err := s.repo.IncrementClickCount(ctx, userID, linkID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported link update %T", update)
	}

	return s.repo.GetLink(ctx, userID, linkID)
}

// DeleteLink deletes a link.
func (s *Service) DeleteLink(ctx context.Context, userID, linkID int64) error {
	return s.repo.DeleteLink(ctx, userID, linkID)
}

package service

import (
	"context"
	"fmt"

	"github.com/culiplan/culiplan-api/internal/models"
)

type profileStore interface {
	SchoolInfo(ctx context.Context) (models.SchoolInfo, error)
	SaveSchoolInfo(ctx context.Context, info models.SchoolInfo) error
	TeacherInfo(ctx context.Context) (models.TeacherInfo, error)
	SaveTeacherInfo(ctx context.Context, info models.TeacherInfo) error
}

// ProfileService manages the school and teacher singleton profiles.
type ProfileService struct {
	profiles profileStore
}

type ProfileServiceParams struct {
	Profiles profileStore
}

func NewProfileService(params ProfileServiceParams) *ProfileService {
	return &ProfileService{profiles: params.Profiles}
}

func (s *ProfileService) School(ctx context.Context) (models.SchoolInfo, error) {
	info, err := s.profiles.SchoolInfo(ctx)
	if err != nil {
		return models.SchoolInfo{}, fmt.Errorf("load school info: %w", err)
	}
	return info, nil
}

func (s *ProfileService) SaveSchool(ctx context.Context, info models.SchoolInfo) error {
	if err := s.profiles.SaveSchoolInfo(ctx, info); err != nil {
		return fmt.Errorf("save school info: %w", err)
	}
	return nil
}

func (s *ProfileService) Teacher(ctx context.Context) (models.TeacherInfo, error) {
	info, err := s.profiles.TeacherInfo(ctx)
	if err != nil {
		return models.TeacherInfo{}, fmt.Errorf("load teacher info: %w", err)
	}
	return info, nil
}

func (s *ProfileService) SaveTeacher(ctx context.Context, info models.TeacherInfo) error {
	if err := s.profiles.SaveTeacherInfo(ctx, info); err != nil {
		return fmt.Errorf("save teacher info: %w", err)
	}
	return nil
}

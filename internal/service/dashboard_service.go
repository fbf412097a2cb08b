package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
)

type dashboardCourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type dashboardCache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any) error
}

// DashboardService composes the landing-page summary. The payload is
// cache-aside: a cache failure only costs a recompute.
type DashboardService struct {
	courses  dashboardCourseLister
	logs     trackingLogLister
	exams    trackingExamLister
	cache    dashboardCache
	logger   *zap.Logger
	now      func() time.Time
	recent   int
	upcoming int
}

type DashboardServiceParams struct {
	Courses dashboardCourseLister
	Logs    trackingLogLister
	Exams   trackingExamLister
	Cache   dashboardCache
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewDashboardService(params DashboardServiceParams) *DashboardService {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		courses:  params.Courses,
		logs:     params.Logs,
		exams:    params.Exams,
		cache:    params.Cache,
		logger:   logger,
		now:      now,
		recent:   7,
		upcoming: 5,
	}
}

const dashboardCacheKey = "dashboard:summary"

// Summary returns the dashboard payload, served from cache when possible.
func (s *DashboardService) Summary(ctx context.Context) (dto.DashboardSummary, error) {
	if s.cache != nil {
		var cached dto.DashboardSummary
		if err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return dto.DashboardSummary{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, summary); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context) (dto.DashboardSummary, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return dto.DashboardSummary{}, fmt.Errorf("list courses: %w", err)
	}
	logs, err := s.logs.List(ctx, models.ClassLogFilter{})
	if err != nil {
		return dto.DashboardSummary{}, fmt.Errorf("list class logs: %w", err)
	}
	exams, err := s.exams.List(ctx)
	if err != nil {
		return dto.DashboardSummary{}, fmt.Errorf("list exams: %w", err)
	}

	summary := dto.DashboardSummary{
		RecentDays:    s.recentActivity(logs),
		Courses:       make([]dto.CourseOverview, 0, len(courses)),
		UpcomingExams: s.upcomingExams(exams),
	}

	for _, course := range courses {
		unitsDone := 0
		for _, unit := range course.Units {
			summary.TotalHoursPlanned += UnitPlannedTotal(unit)
			switch unit.Status {
			case models.UnitCompleted:
				summary.UnitStatus.Completed++
				unitsDone++
			case models.UnitInProgress:
				summary.UnitStatus.InProgress++
			case models.UnitDelayed:
				summary.UnitStatus.Delayed++
			default:
				summary.UnitStatus.Pending++
			}
		}
		completion := CompletionForCourse(course, logs, exams)
		summary.TotalHoursLogged += completion.RealizedHours
		summary.Courses = append(summary.Courses, dto.CourseOverview{
			ID:         course.ID,
			Name:       course.Name,
			Color:      course.Color,
			Units:      len(course.Units),
			UnitsDone:  unitsDone,
			Effort:     EffortForCourse(course.ID, logs, exams),
			Completion: completion,
		})
	}
	return summary, nil
}

// recentActivity sums logged hours per day over the trailing week,
// including empty days so the chart has a fixed width.
func (s *DashboardService) recentActivity(logs []models.ClassLog) []dto.DayHours {
	perDay := make(map[string]int, len(logs))
	for _, log := range logs {
		perDay[log.Date] += log.Hours
	}
	now := s.now()
	days := make([]dto.DayHours, 0, s.recent)
	for i := s.recent - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		days = append(days, dto.DayHours{Date: date, Hours: perDay[date]})
	}
	return days
}

// upcomingExams returns the next few exams on or after today.
func (s *DashboardService) upcomingExams(exams []models.Exam) []models.Exam {
	today := s.now().Format(dateLayout)
	upcoming := make([]models.Exam, 0, s.upcoming)
	for _, exam := range exams {
		if exam.Date >= today {
			upcoming = append(upcoming, exam)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	if len(upcoming) > s.upcoming {
		upcoming = upcoming[:s.upcoming]
	}
	return upcoming
}

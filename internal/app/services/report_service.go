package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

const reportSheet = "Progress"

// IReportService defines instructor reports
type IReportService interface {
	CourseProgressReport(ctx context.Context, id auth.Identity, courseID int64) (*dto.Report, error)
}

// ReportService builds spreadsheet reports for course owners
type ReportService struct {
	courseRepo   repositories.ICourseRepository
	lessonRepo   repositories.ILessonRepository
	progressRepo repositories.IProgressRepository
	logger       zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	progressRepo repositories.IProgressRepository,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// CourseProgressReport lists every enrolled student with their completion
// as an XLSX workbook.
func (s *ReportService) CourseProgressReport(ctx context.Context, id auth.Identity, courseID int64) (*dto.Report, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewForbiddenError(msgPermissionDenied)
		}
		return nil, err
	}
	if !auth.CanEditCourse(id, course) {
		return nil, apperrors.NewForbiddenError(msgPermissionDenied)
	}

	lessons, err := s.lessonRepo.ListLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students, err := s.progressRepo.StudentProgress(ctx, courseID)
	if err != nil {
		return nil, err
	}

	content, err := buildProgressWorkbook(len(lessons), students)
	if err != nil {
		s.logger.Error().Err(err).Int64("courseID", courseID).Msg("Failed to build progress report")
		return nil, err
	}

	name := filestorage.SecureFilename(course.Title)
	if name == "" {
		name = fmt.Sprintf("course_%d", courseID)
	}

	return &dto.Report{
		Filename: name + "_progress.xlsx",
		Content:  content,
	}, nil
}

func buildProgressWorkbook(total int, students []*models.StudentProgress) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headers := []interface{}{"Student", "Email", "Enrolled", "Completed", "Total lessons", "Progress %", "Certificate"}
	if err := f.SetSheetRow(reportSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for i, st := range students {
		p := models.Progress{UserID: st.UserID, Total: total, Done: st.Done}
		eligible := "no"
		if p.Complete() {
			eligible = "yes"
		}

		row := []interface{}{st.Name, st.Email, st.EnrolledAt.Format(time.DateOnly), st.Done, total, p.Percent(), eligible}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "B", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report workbook: %w", err)
	}
	return buf.Bytes(), nil
}

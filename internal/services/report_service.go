package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"taskan/internal/models"
)

// ReportGenerator is the opaque text-generation collaborator: a prompt in,
// a report out. The optional system instruction steers tone.
type ReportGenerator interface {
	GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// GeminiGenerator talks to the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is not configured", models.ErrServiceUnavailable)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateText sends one prompt and returns the response text.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrServiceUnavailable, err)
	}
	return result.Text(), nil
}

// taskSummary, periodSummary, projectSummary and portfolioEntry are the
// deterministic JSON shapes embedded into report prompts. Field order is
// fixed by the struct definitions, so the same tree always produces the
// same summary text.
type taskSummary struct {
	Title  string            `json:"title"`
	Status models.TaskStatus `json:"status"`
}

type periodSummary struct {
	Title     string        `json:"title"`
	TaskCount int           `json:"taskCount"`
	Tasks     []taskSummary `json:"tasks"`
}

type projectSummary struct {
	ProjectName        string          `json:"projectName"`
	ProjectDescription string          `json:"projectDescription"`
	TotalTasks         int             `json:"totalTasks"`
	CompletedTasks     int             `json:"completedTasks"`
	Progress           int             `json:"progress"`
	Periods            []periodSummary `json:"periods"`
}

type portfolioEntry struct {
	Name           string `json:"name"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	Progress       int    `json:"progress"`
}

// ReportService builds project summaries and asks the generator for
// natural-language status reports. With no generator configured every
// report request fails with ErrServiceUnavailable; summaries still work.
type ReportService struct {
	generator ReportGenerator
	logger    *zap.Logger
}

// NewReportService creates a ReportService. generator may be nil.
func NewReportService(generator ReportGenerator, logger *zap.Logger) *ReportService {
	return &ReportService{generator: generator, logger: logger}
}

func completedCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

func progressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// BuildProjectSummary renders one project as indented JSON.
func (s *ReportService) BuildProjectSummary(project models.Project) (string, error) {
	allTasks := project.AllTasks()
	completed := completedCount(allTasks)

	periods := make([]periodSummary, 0, len(project.Periods))
	for _, p := range project.Periods {
		tasks := make([]taskSummary, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			tasks = append(tasks, taskSummary{Title: t.Title, Status: t.Status})
		}
		periods = append(periods, periodSummary{Title: p.Title, TaskCount: len(p.Tasks), Tasks: tasks})
	}

	summary := projectSummary{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		TotalTasks:         len(allTasks),
		CompletedTasks:     completed,
		Progress:           progressPercent(completed, len(allTasks)),
		Periods:            periods,
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode project summary: %w", err)
	}
	return string(data), nil
}

// BuildPortfolioSummary renders per-project progress for every project.
func (s *ReportService) BuildPortfolioSummary(projects []models.Project) (string, error) {
	entries := make([]portfolioEntry, 0, len(projects))
	for _, p := range projects {
		allTasks := p.AllTasks()
		completed := completedCount(allTasks)
		entries = append(entries, portfolioEntry{
			Name:           p.Name,
			TotalTasks:     len(allTasks),
			CompletedTasks: completed,
			Progress:       progressPercent(completed, len(allTasks)),
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode portfolio summary: %w", err)
	}
	return string(data), nil
}

// GenerateProjectReport asks the generator for a status report on one
// project.
func (s *ReportService) GenerateProjectReport(ctx context.Context, project models.Project) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: report generation is not configured", models.ErrServiceUnavailable)
	}

	summary, err := s.BuildProjectSummary(project)
	if err != nil {
		return "", err
	}

	prompt := "Analyze the following project data and provide a concise, high-level status report.\n" +
		"Focus on overall progress, identify potential bottlenecks or risks (e.g., phases with many pending tasks),\n" +
		"and suggest the next key focus area. The report should be easy to read for a project manager.\n\n" +
		"Project Data:\n" + summary

	report, err := s.generator.GenerateText(ctx, prompt, "")
	if err != nil {
		s.logger.Warn("project report generation failed",
			zap.String("project_id", project.ID), zap.Error(err))
		return "", err
	}
	return report, nil
}

// GenerateAssistantReply forwards a free-form user prompt to the
// generator. The optional system instruction steers the assistant's tone
// and role; the reply comes back verbatim.
func (s *ReportService) GenerateAssistantReply(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: report generation is not configured", models.ErrServiceUnavailable)
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", models.ErrValidation)
	}

	reply, err := s.generator.GenerateText(ctx, prompt, systemInstruction)
	if err != nil {
		s.logger.Warn("assistant reply failed", zap.Error(err))
		return "", err
	}
	return reply, nil
}

// GeneratePortfolioReport asks the generator for a cross-project
// performance report.
func (s *ReportService) GeneratePortfolioReport(ctx context.Context, projects []models.Project) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: report generation is not configured", models.ErrServiceUnavailable)
	}

	summary, err := s.BuildPortfolioSummary(projects)
	if err != nil {
		return "", err
	}

	prompt := "Analyze the following data for multiple projects and provide a comprehensive performance report.\n" +
		"Summarize the overall status, compare the progress of different projects, and identify\n" +
		"high-performing projects and those that might be lagging.\n\n" +
		"Projects Data:\n" + summary

	report, err := s.generator.GenerateText(ctx, prompt, "")
	if err != nil {
		s.logger.Warn("portfolio report generation failed", zap.Error(err))
		return "", err
	}
	return report, nil
}

package webapp

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/analytica/webapp/pkg/backend"
)

type dashboardView struct {
	BaseView
	Dataset  DatasetView
	KPIs     []KPICard
	Charts   []ChartView
	Insights []InsightView
	// NotAnalyzed flags a dataset that has no analysis yet; the page shows
	// an instructive message instead of an empty dashboard.
	NotAnalyzed bool
	LoadError   string
}

func (a *App) handleDashboard(c *fiber.Ctx) error {
	id := c.Params("id")
	api := a.client(c)
	ctx := c.UserContext()
	theme := ThemeFromRequest(c)

	dataset, err := api.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		if errors.Is(err, backend.ErrNotFound) {
			return c.Redirect("/upload", fiber.StatusFound)
		}
		return a.renderer.Render(c, "dashboard", dashboardView{
			BaseView:  a.base(c, "Dashboard"),
			LoadError: backend.ErrorMessage(err, "Could not load this dataset"),
		})
	}

	view := dashboardView{
		BaseView: a.base(c, dataset.Filename),
		Dataset:  DatasetView{DatasetSummary: dataset},
	}

	analysis, err := api.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		if errors.Is(err, backend.ErrNotFound) {
			view.NotAnalyzed = true
			return a.renderer.Render(c, "dashboard", view)
		}
		view.LoadError = backend.ErrorMessage(err, "Could not load the analysis")
		return a.renderer.Render(c, "dashboard", view)
	}

	view.KPIs = KPICards(analysis)
	view.Insights = InsightViews(analysis.Insights)
	view.Charts = make([]ChartView, 0, len(analysis.Charts))
	for _, chart := range analysis.Charts {
		view.Charts = append(view.Charts, a.charts.Render(chart, theme))
	}
	return a.renderer.Render(c, "dashboard", view)
}

type reportsView struct {
	BaseView
	Datasets []DatasetView
	Error    string
}

func (a *App) handleReports(c *fiber.Ctx) error {
	view := reportsView{BaseView: a.base(c, "Reports")}

	datasets, err := a.client(c).ListDatasets(c.UserContext())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view.Error = backend.ErrorMessage(err, "Could not load reports")
		return a.renderer.Render(c, "reports", view)
	}
	view.Datasets = DatasetViews(AnalyzedOnly(datasets))
	return a.renderer.Render(c, "reports", view)
}

type qualityView struct {
	BaseView
	Dataset  DatasetView
	Score    string
	Issues   []QualityIssueView
	Stats    []StatRow
	Insights []InsightView
	Error    string
}

func (a *App) handleQuality(c *fiber.Ctx) error {
	id := c.Params("id")
	api := a.client(c)
	ctx := c.UserContext()

	dataset, err := api.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		return c.Redirect("/upload", fiber.StatusFound)
	}

	view := qualityView{
		BaseView: a.base(c, "Data Quality"),
		Dataset:  DatasetView{DatasetSummary: dataset},
	}

	report, err := api.GetQuality(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		if errors.Is(err, backend.ErrNotFound) {
			return c.Redirect("/dashboard/"+id, fiber.StatusFound)
		}
		view.Error = backend.ErrorMessage(err, "Could not load the quality report")
		return a.renderer.Render(c, "quality", view)
	}
	view.Score = trimFloat(report.QualityScore) + "%"
	view.Issues = QualityIssueViews(report.QualityIssues)
	view.Stats = StatRows(report.Statistics)

	// Insights are a nicety here; the report stands on its own.
	if insights, err := api.GetInsights(ctx, id); err == nil {
		view.Insights = InsightViews(insights)
	}
	return a.renderer.Render(c, "quality", view)
}

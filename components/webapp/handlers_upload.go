package webapp

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/analytica/webapp/pkg/backend"
)

type uploadView struct {
	BaseView
	Datasets []DatasetView
	Preview  PreviewView
	// PreviewFor names the freshly uploaded file whose preview is shown.
	PreviewFor string
	Uploaded   bool
	Error      string
}

func (a *App) handleUploadPage(c *fiber.Ctx) error {
	view := uploadView{BaseView: a.base(c, "Upload Data")}

	datasets, err := a.client(c).ListDatasets(c.UserContext())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view.Error = backend.ErrorMessage(err, "Could not load your datasets")
		return a.renderer.Render(c, "upload", view)
	}
	view.Datasets = DatasetViews(datasets)
	return a.renderer.Render(c, "upload", view)
}

func (a *App) handleUpload(c *fiber.Ctx) error {
	view := uploadView{BaseView: a.base(c, "Upload Data")}
	api := a.client(c)
	ctx := c.UserContext()

	header, err := c.FormFile("file")
	if err != nil {
		view.Error = "Choose a CSV or Excel file to upload"
		view.Datasets = a.listDatasetsQuiet(c)
		return a.renderer.Render(c, "upload", view)
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	uploaded, err := api.UploadFile(ctx, header.Filename, file)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view.Error = backend.ErrorMessage(err, "Upload failed")
		view.Datasets = a.listDatasetsQuiet(c)
		return a.renderer.Render(c, "upload", view)
	}

	preview, err := api.GetPreview(ctx, uploaded.ID)
	if err == nil {
		view.Preview = BuildPreview(preview)
		view.PreviewFor = uploaded.Filename
	}
	view.Uploaded = true
	view.Datasets = a.listDatasetsQuiet(c)
	return a.renderer.Render(c, "upload", view)
}

// listDatasetsQuiet refreshes the dataset grid without letting a listing
// failure mask the primary outcome already placed in the view.
func (a *App) listDatasetsQuiet(c *fiber.Ctx) []DatasetView {
	datasets, err := a.client(c).ListDatasets(c.UserContext())
	if err != nil {
		return nil
	}
	return DatasetViews(datasets)
}

func (a *App) handleAnalyze(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := a.client(c).AnalyzeDataset(c.UserContext(), id); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view := uploadView{
			BaseView: a.base(c, "Upload Data"),
			Error:    backend.ErrorMessage(err, "Analysis failed"),
			Datasets: a.listDatasetsQuiet(c),
		}
		return a.renderer.Render(c, "upload", view)
	}
	return c.Redirect(fmt.Sprintf("/dashboard/%s", id), fiber.StatusFound)
}

func (a *App) handleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := a.client(c).DeleteDataset(c.UserContext(), id); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return a.expireSession(c)
		}
		view := uploadView{
			BaseView: a.base(c, "Upload Data"),
			Error:    backend.ErrorMessage(err, "Could not delete dataset"),
			Datasets: a.listDatasetsQuiet(c),
		}
		return a.renderer.Render(c, "upload", view)
	}
	return c.Redirect("/upload", fiber.StatusFound)
}

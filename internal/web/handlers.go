package web

import (
	"embed"
	"io/fs"
	"net/http"

	"json2sql/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templates embed.FS

const defaultLimit = 100

// NewApp builds the read-only inspection app over store.
func NewApp(store *db.AristaDB) *fiber.App {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})
	SetupRoutes(app, store)
	return app
}

func SetupRoutes(app *fiber.App, store *db.AristaDB) {
	app.Get("/", func(c *fiber.Ctx) error {
		samples, err := store.LatestSamples()
		if err != nil {
			return err
		}
		states, err := store.States()
		if err != nil {
			return err
		}

		disabled := map[string]bool{}
		streak := map[string]int{}
		for _, s := range states {
			disabled[s.Interface] = s.Disabled
			streak[s.Interface] = s.ConsecutiveErrors
		}

		type Row struct {
			Interface         string
			FCS               int64
			Symbol            int64
			PolledAt          string
			ConsecutiveErrors int
			Disabled          bool
		}
		var rows []Row
		for _, s := range samples {
			rows = append(rows, Row{
				Interface:         s.Interface,
				FCS:               s.FCS,
				Symbol:            s.Symbol,
				PolledAt:          s.PolledAt.Format("2006-01-02 15:04:05"),
				ConsecutiveErrors: streak[s.Interface],
				Disabled:          disabled[s.Interface],
			})
		}

		return c.Render("index", fiber.Map{
			"Rows": rows,
		})
	})

	api := app.Group("/api")

	api.Get("/samples", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", defaultLimit)
		if limit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
		}
		samples, err := store.SearchTable(db.SampleFilter{
			Interface: c.Query("interface"),
			Limit:     limit,
		}, db.SamplesTable)
		if err != nil {
			return err
		}
		return c.JSON(samples)
	})

	api.Get("/states", func(c *fiber.Ctx) error {
		states, err := store.States()
		if err != nil {
			return err
		}
		return c.JSON(states)
	})
}

package printing

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"go.uber.org/zap"

	trajectoryapp "github.com/osis/backend/internal/application/trajectory"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/infrastructure/storage"
)

// Uploader stores a rendered file under the given key
type Uploader interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// ArchivePDFRenderer renders the trajectory archive document and uploads
// it to the document store
type ArchivePDFRenderer struct {
	pdf      PDFRenderer
	uploader Uploader
	tmpl     *template.Template
	logger   *zap.Logger
}

// NewArchivePDFRenderer creates a new ArchivePDFRenderer
func NewArchivePDFRenderer(pdf PDFRenderer, uploader Uploader, logger *zap.Logger) *ArchivePDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchivePDFRenderer{
		pdf:      pdf,
		uploader: uploader,
		tmpl:     template.Must(template.New("archive").Funcs(archiveFuncs).Parse(archiveTemplate)),
		logger:   logger,
	}
}

// Ensure ArchivePDFRenderer implements the application port
var _ trajectoryapp.ArchiveRenderer = (*ArchivePDFRenderer)(nil)

// Render produces the archive PDF and returns the stored file reference
func (r *ArchivePDFRenderer) Render(ctx context.Context, data trajectoryapp.ArchiveData) (valueobject.DocumentRef, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to render archive template", err)
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:  buf.String(),
		Title: "Archive du parcours doctoral " + data.Trajectory.Reference,
	})
	if err != nil {
		return "", err
	}

	key := storage.TrajectoryKey(data.Trajectory.ID, ".pdf")
	if err := r.uploader.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to store archive PDF", err)
	}

	r.logger.Info("trajectory archive stored",
		zap.String("trajectory_id", data.Trajectory.ID.String()),
		zap.String("storage_key", key),
		zap.Int("pages", result.PageCount),
	)
	return valueobject.DocumentRef(key), nil
}

var archiveFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006")
	},
	"dateptr": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006")
	},
}

// archiveTemplate is the A4 layout of the trajectory archive. All labels
// are in French, matching the other documents produced for the CDD.
const archiveTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<title>Archive du parcours doctoral</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11px; color: #1a1a1a; }
  h1 { font-size: 18px; border-bottom: 2px solid #00407a; padding-bottom: 6px; }
  h2 { font-size: 13px; color: #00407a; margin-top: 18px; }
  table { width: 100%; border-collapse: collapse; margin-top: 6px; }
  th, td { border: 1px solid #ccc; padding: 4px 6px; text-align: left; vertical-align: top; }
  th { background: #f0f4f8; }
  .meta td { border: none; padding: 2px 6px 2px 0; }
  .muted { color: #666; }
</style>
</head>
<body>
  <h1>Archive du parcours doctoral {{ .Trajectory.Reference }}</h1>

  <table class="meta">
    <tr><td>Formation</td><td>{{ .Trajectory.TrainingAcronym }} ({{ .Trajectory.TrainingYear }})</td></tr>
    <tr><td>Statut</td><td>{{ .Trajectory.Status }}</td></tr>
    <tr><td>Admission</td><td>{{ date .Trajectory.AdmittedAt }}</td></tr>
    {{ if .Trajectory.ProximityCommission }}<tr><td>Commission de proximité</td><td>{{ .Trajectory.ProximityCommission }}</td></tr>{{ end }}
    {{ if .Trajectory.CotutelleIntended }}<tr><td>Cotutelle</td><td>Oui</td></tr>{{ end }}
  </table>

  <h2>Projet de recherche</h2>
  <table class="meta">
    <tr><td>Titre</td><td>{{ .Trajectory.ProjectTitle }}</td></tr>
    {{ if .Trajectory.ThesisLanguage }}<tr><td>Langue de rédaction</td><td>{{ .Trajectory.ThesisLanguage }}</td></tr>{{ end }}
    {{ if .Trajectory.FundingType }}<tr><td>Financement</td><td>{{ .Trajectory.FundingType }}</td></tr>{{ end }}
  </table>
  {{ if .Trajectory.ProjectAbstract }}<p class="muted">{{ .Trajectory.ProjectAbstract }}</p>{{ end }}

  {{ if .Group }}
  <h2>Groupe de supervision</h2>
  <table>
    <tr><th>Rôle</th><th>Nom</th><th>Institution</th><th>Signature</th></tr>
    {{ range .Group.Members }}
    <tr>
      <td>{{ .Type }}{{ if .IsReferencePromoter }} (référent){{ end }}</td>
      <td>{{ .FirstName }} {{ .LastName }}</td>
      <td>{{ if .Institute }}{{ .Institute }}{{ else }}UCLouvain{{ end }}</td>
      <td>{{ .SignatureState }}{{ if .SignedAt }} le {{ dateptr .SignedAt }}{{ end }}</td>
    </tr>
    {{ end }}
  </table>
  {{ end }}

  {{ if .Papers }}
  <h2>Épreuves de confirmation</h2>
  <table>
    <tr><th>Échéance</th><th>Date de l'épreuve</th><th>En cours</th></tr>
    {{ range .Papers }}
    <tr>
      <td>{{ date .DeadlineDate }}</td>
      <td>{{ dateptr .TakenDate }}</td>
      <td>{{ if .Active }}Oui{{ else }}Non{{ end }}</td>
    </tr>
    {{ end }}
  </table>
  {{ end }}

  <h2>Formation doctorale</h2>
  <p>Crédits acquis : <strong>{{ printf "%.1f" .Trajectory.ECTSEarned }} ECTS</strong></p>
  {{ if .Activities }}
  <table>
    <tr><th>Catégorie</th><th>Intitulé</th><th>ECTS</th><th>Statut</th></tr>
    {{ range .Activities }}
    <tr>
      <td>{{ .Category }}</td>
      <td>{{ .Title }}</td>
      <td>{{ .ECTS }}</td>
      <td>{{ .Status }}</td>
    </tr>
    {{ end }}
  </table>
  {{ end }}
</body>
</html>`

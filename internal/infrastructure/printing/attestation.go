package printing

import (
	"bytes"
	"context"
	"html/template"

	"go.uber.org/zap"

	confirmationapp "github.com/osis/backend/internal/application/confirmation"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/infrastructure/storage"
)

// AttestationPDFRenderer renders the confirmation success attestation and
// uploads it to the document store
type AttestationPDFRenderer struct {
	pdf      PDFRenderer
	uploader Uploader
	tmpl     *template.Template
	logger   *zap.Logger
}

// NewAttestationPDFRenderer creates a new AttestationPDFRenderer
func NewAttestationPDFRenderer(pdf PDFRenderer, uploader Uploader, logger *zap.Logger) *AttestationPDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttestationPDFRenderer{
		pdf:      pdf,
		uploader: uploader,
		tmpl:     template.Must(template.New("attestation").Funcs(archiveFuncs).Parse(attestationTemplate)),
		logger:   logger,
	}
}

// Ensure AttestationPDFRenderer implements the application port
var _ confirmationapp.AttestationRenderer = (*AttestationPDFRenderer)(nil)

// Render produces the attestation PDF and returns the stored file reference
func (r *AttestationPDFRenderer) Render(ctx context.Context, data confirmationapp.AttestationData) (valueobject.DocumentRef, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to render attestation template", err)
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:  buf.String(),
		Title: "Attestation de réussite " + data.Trajectory.Reference,
	})
	if err != nil {
		return "", err
	}

	key := storage.TrajectoryKey(data.Trajectory.ID, ".pdf")
	if err := r.uploader.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to store attestation PDF", err)
	}

	r.logger.Info("confirmation attestation stored",
		zap.String("trajectory_id", data.Trajectory.ID.String()),
		zap.String("storage_key", key),
	)
	return valueobject.DocumentRef(key), nil
}

const attestationTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<title>Attestation de réussite</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #1a1a1a; margin: 40px; }
  h1 { font-size: 17px; color: #00407a; text-align: center; margin-bottom: 30px; }
  p { line-height: 1.6; }
  .signature { margin-top: 60px; text-align: right; }
</style>
</head>
<body>
  <h1>Attestation de réussite de l'épreuve de confirmation</h1>
  <p>
    La commission doctorale de domaine atteste que l'épreuve de confirmation
    du parcours doctoral <strong>{{ .Trajectory.Reference }}</strong>
    ({{ .Trajectory.TrainingAcronym }}, {{ .Trajectory.TrainingYear }})
    a été réussie{{ if .TakenDate }} en date du {{ dateptr .TakenDate }}{{ end }}.
  </p>
  {{ if .Trajectory.ProjectTitle }}
  <p>Projet de recherche : <em>{{ .Trajectory.ProjectTitle }}</em></p>
  {{ end }}
  <div class="signature">
    <p>Pour la commission doctorale de domaine</p>
  </div>
</body>
</html>`

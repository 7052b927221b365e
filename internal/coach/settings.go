package coach

import (
	"context"

	"github.com/brillia/career-coach/internal/ingest"
	"github.com/brillia/career-coach/internal/profile"
	"github.com/brillia/career-coach/internal/types"
)

// SettingsInput is one save of the profile settings form. Nil pointers mean
// "leave unchanged"; a non-nil ResumeData runs the ingestion pipeline.
type SettingsInput struct {
	Name              *string
	JobTitle          *string
	YearsOfExperience *int
	ResumeFileName    string
	ResumeData        []byte
	Progress          ingest.ProgressFunc
}

// SaveSettings applies a settings save. When a resume is attached, the
// pipeline's extracted location fills the profile unless it came back as the
// not-found sentinel, and its experience estimate is used only when the form
// left experience blank. The cascade rules run inside the single Apply.
func (c *Coach) SaveSettings(ctx context.Context, in SettingsInput) error {
	update := profile.Update{
		Name:              in.Name,
		JobTitle:          in.JobTitle,
		YearsOfExperience: in.YearsOfExperience,
	}

	if in.ResumeData != nil {
		processed, err := c.pipeline.Ingest(ctx, in.ResumeFileName, in.ResumeData, in.Progress)
		if err != nil {
			return err
		}
		update.ResumeText = &processed.ResumeText
		update.ResumeFileName = &in.ResumeFileName
		if processed.Location != types.LocationNotFound {
			update.Location = &processed.Location
		}
		if in.YearsOfExperience == nil && c.profiles.Snapshot().YearsOfExperience == nil {
			years := processed.YearsOfExperience
			update.YearsOfExperience = &years
		}
	}

	return c.profiles.Apply(update)
}

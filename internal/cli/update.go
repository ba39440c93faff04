package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/internal/logger"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var updateLanguages []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the page cache",
		Long:  "Download and extract all stale language archives from the mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			langs := cfg.UpdateLanguages()
			if len(updateLanguages) > 0 {
				langs = append(updateLanguages, "en")
			}

			result, err := m.Update(cmd.Context(), langs)
			if err != nil {
				return err
			}
			if result.BytesFetched > 0 {
				logger.Debugf("downloaded %s", humanize.IBytes(uint64(result.BytesFetched)))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&updateLanguages, "language", "L", nil, "additional language to download (repeatable)")

	return cmd
}

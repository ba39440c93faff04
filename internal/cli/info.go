package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/pkg/fsutil"
)

// formatAge renders a duration with its two most significant units, the
// way cache ages are reported ("2d, 5h", "3min, 12s").
func formatAge(d time.Duration) string {
	secs := int64(d.Seconds())
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	minutes := secs / 60
	secs %= 60

	switch {
	case days > 0 && hours == 0:
		return fmt.Sprintf("%dd", days)
	case days > 0:
		return fmt.Sprintf("%dd, %dh", days, hours)
	case hours > 0 && minutes == 0:
		return fmt.Sprintf("%dh", hours)
	case hours > 0:
		return fmt.Sprintf("%dh, %dmin", hours, minutes)
	case minutes > 0 && secs == 0:
		return fmt.Sprintf("%dmin", minutes)
	case minutes > 0:
		return fmt.Sprintf("%dmin, %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display the cache location, age, size, and per-language page counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := loadConfigAndManager()
			if err != nil {
				return err
			}

			info, err := m.GetInfo()
			if err != nil {
				return err
			}
			size, _, err := fsutil.DirStats(info.Directory)
			if err != nil {
				return err
			}

			cmd.Printf("Cache directory: %s\n", info.Directory)
			cmd.Printf("Last updated:    %s ago\n", formatAge(info.Age))
			cmd.Printf("Disk usage:      %s\n", humanize.IBytes(uint64(size)))
			cmd.Println()
			for _, lang := range info.Languages {
				cmd.Printf("%-8s %6d pages\n", lang.Language, lang.Pages)
			}
			cmd.Printf("%-8s %6d pages\n", "total", info.Total)
			return nil
		},
	}

	return cmd
}

package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate a scene file",
		Long: `Parse and validate a scene file without playing it.

Every problem in the file is reported at once. With --normalize the
decoded document is printed back as YAML.`,
		Usage: "motion check <scene.yaml> [--normalize]",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	var path string
	normalize := false
	for _, arg := range args {
		switch arg {
		case "--normalize":
			normalize = true
		default:
			if path != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("scene file is required\n\nUsage: motion check <scene.yaml>")
	}
	if _, err := loadConfig(); err != nil {
		return err
	}

	doc, err := loadScene(path)
	if err != nil {
		return err
	}

	looping := 0
	var total time.Duration
	perTarget := make(map[string]int)
	for _, a := range doc.Animations {
		if a.Repeat != "" && a.Repeat != "none" {
			looping++
		} else {
			total = max(total, a.Delay.Std()+a.Duration.Std())
		}
		perTarget[a.Target]++
	}

	fmt.Fprintf(stdout, "%s: scene %s, %d shapes, %d animations (%d looping)\n",
		path, doc.Version, len(doc.Shapes), len(doc.Animations), looping)
	if total > 0 {
		fmt.Fprintf(stdout, "  finite animations settle after %v\n", total)
	}
	for _, s := range doc.Shapes {
		if n := perTarget[s.ID]; n > 1 {
			fmt.Fprintf(stdout, "  warning: %d animations target %q; only the last one plays\n", n, s.ID)
		}
	}

	if normalize {
		out, err := scene.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "---")
		stdout.Write(out)
	}
	return nil
}

// loadScene reads and validates a scene file.
func loadScene(path string) (*scene.Document, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"portfolio/internal/domain/entities"
	"portfolio/internal/infrastructure/i18n"
	"portfolio/internal/infrastructure/site"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "Inspect the translation dictionary",
}

var localesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report keys that are missing in a locale or used by a page without a translation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		dict, err := i18n.NewTranslator(cfg.DefaultLocale, logger)
		if err != nil {
			return err
		}
		s, err := site.Load(siteSource(cfg)())
		if err != nil {
			return err
		}

		keys := i18n.AllKeys(dict)
		seen := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		for _, p := range s.Paths() {
			page, err := s.Page(p)
			if err != nil {
				return err
			}
			for _, b := range page.Open().Bindings() {
				if _, ok := seen[b.Key]; !ok {
					seen[b.Key] = struct{}{}
					keys = append(keys, b.Key)
				}
			}
		}
		sort.Strings(keys)

		out := cmd.OutOrStdout()
		missing := i18n.Missing(dict, keys)
		if len(missing) == 0 {
			fmt.Fprintf(out, "✅ %d keys translated in every locale\n", len(keys))
			return nil
		}
		for _, l := range entities.Locales {
			if gaps := missing[l]; len(gaps) > 0 {
				fmt.Fprintf(out, "%s: %d missing\n  %s\n", l, len(gaps), strings.Join(gaps, "\n  "))
			}
		}
		return fmt.Errorf("translations incomplete")
	},
}

func init() {
	localesCmd.AddCommand(localesCheckCmd)
}

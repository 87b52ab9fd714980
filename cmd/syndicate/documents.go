package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"syndication-kit/core/discovery"
	"syndication-kit/core/extensions"
	"syndication-kit/core/interfaces"
	"syndication-kit/core/syndication"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "List the extensions attached to each host of one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, closeAll, err := openFiles(args)
			if err != nil {
				return err
			}
			defer closeAll()

			svc := syndication.NewService(interfaces.Dependencies{Logger: a.logger}, a.settings)
			docs, err := svc.LoadDocuments(cmd.Context(), sources)
			if err != nil {
				return err
			}
			if len(docs) != len(args) {
				return fmt.Errorf("%d of %d documents failed to load", len(args)-len(docs), len(args))
			}

			out := cmd.OutOrStdout()
			for i, doc := range docs {
				fmt.Fprintf(out, "%s (%s)\n", args[i], syndication.FormatOf(doc))
				printHost(out, "root", doc.Root())
			}
			return nil
		},
	}
}

func printHost(w io.Writer, label string, host extensions.Host) {
	for _, ext := range host.Extensions() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", label, ext.Kind(), ext.Descriptor().Namespace())
	}
	composite, ok := host.(extensions.Composite)
	if !ok {
		return
	}
	for i, child := range composite.ExtensibleChildren() {
		printHost(w, fmt.Sprintf("%s/%d", label, i), child)
	}
}

func newRoundtripCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Load a document and write it back with its extensions re-serialized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := syndication.Load(f, a.settings)
			if err != nil {
				return err
			}

			if output == "" {
				return syndication.Save(doc, cmd.OutOrStdout(), a.settings)
			}
			data, err := syndication.Marshal(doc, a.settings)
			if err != nil {
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newDiscoverCmd(a *app) *cobra.Command {
	var (
		baseURL     string
		contentType string
		feedsOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "discover <html-file>",
		Short: "List feed and RSD links advertised by an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			endpoints, err := discovery.Discover(f, contentType, baseURL)
			if err != nil {
				return err
			}
			if feedsOnly {
				endpoints = discovery.Feeds(endpoints)
			}
			a.logger.Debug("Discovered endpoints", map[string]interface{}{
				"file":  args[0],
				"count": len(endpoints),
			})

			out := cmd.OutOrStdout()
			for _, e := range endpoints {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", e.Kind, e.Type, e.URL, e.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base", "", "URL the page was retrieved from")
	cmd.Flags().StringVar(&contentType, "content-type", "text/html", "Content-Type of the page")
	cmd.Flags().BoolVar(&feedsOnly, "feeds", false, "Only list feed links")
	return cmd
}

func openFiles(paths []string) ([]io.Reader, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}

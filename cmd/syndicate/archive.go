package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"syndication-kit/core/interfaces"
	"syndication-kit/core/syndication"
)

func newArchiveCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "archive <file>",
		Short: "Store a document in the configured store and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.openStore()
			if err != nil {
				return err
			}
			defer release()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			svc := a.service(store)
			doc, err := svc.LoadDocument(cmd.Context(), f)
			if err != nil {
				return err
			}
			stored, err := svc.StoreDocument(cmd.Context(), id, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Store under this id instead of a generated one")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Write a stored document to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.openStore()
			if err != nil {
				return err
			}
			defer release()

			doc, err := a.service(store).FetchDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return syndication.Save(doc, cmd.OutOrStdout(), a.settings)
		},
	}
}

func (a *app) service(store interfaces.Cache) *syndication.Service {
	svc := syndication.NewService(interfaces.Dependencies{Cache: store, Logger: a.logger}, a.settings)
	svc.SetTTL(a.cfg.Store.TTL)
	return svc
}

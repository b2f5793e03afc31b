package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	defaultStages       = []string{"Lead", "Contact Made", "Proposal Made", "Proposal Rejected", "Customer"}
	defaultLeadSources  = []string{"Website", "Online AD", "Twitter", "LinkedIn", "Webinar", "Trade Show", "Referral"}
	defaultTags         = []string{"Priority", "VIP"}
	defaultCustomFields = []string{"Birth Date", "Company", "Job Title", "Family Members"}
	defaultProducts     = []struct {
		name  string
		price string
	}{
		{"Product 1", "12.99"}, {"Product 2", "2.99"}, {"Product 3", "55.99"},
		{"Product 4", "99.99"}, {"Product 5", "1.99"},
	}
)

type seedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	Catalog       bool
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea el administrador inicial y las etapas por defecto",
		Long: "Crea el usuario administrador y, si el embudo está vacío, las etapas por defecto " +
			"(la primera queda como etapa por defecto). Con --catalog agrega orígenes, etiquetas, " +
			"campos personalizados y productos de ejemplo en las tablas vacías.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			return seed(cmd.Context(), svc, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "admin@admin.com", "Email del administrador")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", "", "Contraseña del administrador (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&opts.AdminName, "admin-name", "Admin", "Nombre del administrador")
	cmd.Flags().BoolVar(&opts.Catalog, "catalog", false, "Cargar catálogos de ejemplo")
	_ = cmd.MarkFlagRequired("admin-password")
	return cmd
}

// seed es idempotente: el admin existente y las tablas con datos se dejan como están.
func seed(ctx context.Context, svc *services, opts seedOptions, out io.Writer) error {
	_, err := svc.auth.RegisterUser(ctx, dto.RegisterRequest{
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
		Name:     opts.AdminName,
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Fprintf(out, "admin %s ya existe\n", opts.AdminEmail)
	case err != nil:
		return fmt.Errorf("crear admin: %w", err)
	default:
		fmt.Fprintf(out, "admin %s creado\n", opts.AdminEmail)
	}

	stages, err := svc.registry.List(ctx)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		for _, name := range defaultStages {
			if _, err := svc.registry.Create(ctx, name); err != nil {
				return fmt.Errorf("crear etapa %q: %w", name, err)
			}
		}
		fmt.Fprintf(out, "%d etapas creadas\n", len(defaultStages))
	}

	if !opts.Catalog {
		return nil
	}
	return seedCatalog(ctx, svc, out)
}

func seedCatalog(ctx context.Context, svc *services, out io.Writer) error {
	if list, err := svc.settings.ListLeadSources(ctx); err != nil {
		return err
	} else if len(list) == 0 {
		for _, name := range defaultLeadSources {
			if _, err := svc.settings.CreateLeadSource(ctx, dto.NameRequest{Name: name}); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%d orígenes creados\n", len(defaultLeadSources))
	}

	if list, err := svc.settings.ListTags(ctx); err != nil {
		return err
	} else if len(list) == 0 {
		for _, name := range defaultTags {
			if _, err := svc.settings.CreateTag(ctx, dto.TagRequest{Name: name}); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%d etiquetas creadas\n", len(defaultTags))
	}

	if list, err := svc.settings.ListCustomFields(ctx); err != nil {
		return err
	} else if len(list) == 0 {
		for _, name := range defaultCustomFields {
			if _, err := svc.settings.CreateCustomField(ctx, dto.NameRequest{Name: name}); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%d campos personalizados creados\n", len(defaultCustomFields))
	}

	if list, err := svc.products.List(ctx); err != nil {
		return err
	} else if len(list) == 0 {
		for _, p := range defaultProducts {
			if _, err := svc.products.Create(ctx, dto.CreateProductRequest{Name: p.name, Price: decimal.RequireFromString(p.price)}); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%d productos creados\n", len(defaultProducts))
	}
	return nil
}

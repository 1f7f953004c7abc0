package app

import (
	"context"
	"fmt"

	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/codegen"
	"github.com/vk/blockforge/internal/ctxlog"
	"github.com/vk/blockforge/internal/editorlink"
	"github.com/vk/blockforge/internal/project"
	"github.com/vk/blockforge/internal/validator"
)

// Run executes one load-validate-generate pass over the configured project.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, err := project.Load(cfg.ProjectPath)
	if err != nil {
		return err
	}
	program, err := project.BuildProgram(ctx, doc, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build program tree: %w", err)
	}
	a.logger.Debug("Program tree built.", "instances", program.Len(), "has_root", program.RootID != "")

	profile, err := a.resolveBoard(cfg, program.BoardID)
	if err != nil {
		return err
	}
	a.logger.Debug("Target board resolved.", "board", profile.ID, "fqbn", profile.FQBN)

	diags := validator.New(a.registry, profile).Validate(program)
	for _, diag := range diags {
		a.logger.Warn("Validation diagnostic.", "message", diag.Message, "block", diag.BlockID)
		fmt.Fprintf(a.errW, "diagnostic: %s\n", diag)
	}
	if cfg.CheckOnly {
		a.logger.Info("Validation finished.", "diagnostics", len(diags))
		return nil
	}

	bundle, buildErr := codegen.New(a.registry, profile).Build(program)
	if cfg.EditorURL != "" {
		a.publish(ctx, cfg, profile, bundle, diags, buildErr)
	}
	if buildErr != nil {
		return fmt.Errorf("code generation failed: %w", buildErr)
	}
	a.logger.Info("Sketch generated.", "blocks_mapped", len(bundle.Mapping))

	return a.writeSketch(cfg, bundle.Code)
}

// resolveBoard picks the target board: the CLI override wins over the board
// recorded in the project document.
func (a *App) resolveBoard(cfg *Config, programBoard string) (*board.Profile, error) {
	id := cfg.BoardID
	if id == "" {
		id = programBoard
	}
	if id == "" {
		return nil, fmt.Errorf("no target board: the project names none and no -board flag was given")
	}
	profile, ok := a.boards[id]
	if !ok {
		return nil, fmt.Errorf("unknown board %q", id)
	}
	return profile, nil
}

// publish sends the build result to the editor endpoint. Publishing is best
// effort: a dead editor must not break generation.
func (a *App) publish(ctx context.Context, cfg *Config, profile *board.Profile, bundle *codegen.SketchBundle, diags []validator.Diagnostic, buildErr error) {
	update := &editorlink.Update{Board: profile.ID}
	for _, diag := range diags {
		update.Diagnostics = append(update.Diagnostics, editorlink.Diagnostic{
			Message: diag.Message,
			BlockID: diag.BlockID,
		})
	}
	if buildErr != nil {
		update.Error = buildErr.Error()
	} else {
		update.Code = bundle.Code
		update.Mapping = bundle.Mapping
	}
	if err := editorlink.NewClient(cfg.EditorURL).Publish(ctx, update); err != nil {
		a.logger.Warn("Failed to publish update to editor.", "error", err)
	}
}

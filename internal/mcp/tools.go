package mcp

import (
	"context"
	"errors"

	"github.com/claude/gymmate/internal/display"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all training programs in schedule order. Each program has an id, a day label, a muscle group and a progress fraction (0 to 1)."),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Get a single training program by id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Program id")),
)

var toolAddProgram = mcp.NewTool("add_program",
	mcp.WithDescription("Append a new training program with zero progress. Returns the program with its assigned id."),
	mcp.WithString("day", mcp.Required(), mcp.Description("Day label (e.g. 'Sunday')")),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("Muscle group (e.g. 'Arms')")),
)

var toolUpdateProgram = mcp.NewTool("update_program",
	mcp.WithDescription("Replace the day and muscle group of an existing program. Id, progress and position are kept."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Program id")),
	mcp.WithString("day", mcp.Required(), mcp.Description("New day label")),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("New muscle group")),
)

var toolDeleteProgram = mcp.NewTool("delete_program",
	mcp.WithDescription("Remove a training program. The remaining programs keep their order."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Program id")),
)

var toolSetProgress = mcp.NewTool("set_progress",
	mcp.WithDescription("Record how much of a program is done, as a fraction between 0 and 1."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Program id")),
	mcp.WithNumber("progress", mcp.Required(), mcp.Description("Completion fraction, 0 to 1"), mcp.Min(0), mcp.Max(1)),
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Get the user's profile (name, age, gender, body measurements, lifestyle and goals)."),
)

var toolUpdateProfile = mcp.NewTool("update_profile",
	mcp.WithDescription("Change the user's name and age. Other profile fields are left untouched."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
	mcp.WithString("age", mcp.Description("Age, free text. Omit to keep the current age")),
)

var toolGetDashboard = mcp.NewTool("get_dashboard",
	mcp.WithDescription("Home screen summary: welcome line, today's workout (matched on the current weekday, else 'Rest Day') and the quick schedule."),
)

// --- Tool handlers ---

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		return h.failed("list_programs", err), nil
	}
	return jsonResult(programs), nil
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	p, err := h.ds.GetProgram(ctx, id)
	if err != nil {
		return h.failed("get_program", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) addProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	muscle, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}

	p, err := h.ds.AddProgram(ctx, day, muscle)
	if err != nil {
		return h.failed("add_program", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) updateProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	day, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	muscle, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}

	p, err := h.ds.UpdateProgram(ctx, id, day, muscle)
	if err != nil {
		return h.failed("update_program", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) deleteProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	if err := h.ds.DeleteProgram(ctx, id); err != nil {
		return h.failed("delete_program", err), nil
	}
	return mcp.NewToolResultText("deleted"), nil
}

func (h *handlers) setProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	progress, err := req.RequireFloat("progress")
	if err != nil {
		return mcp.NewToolResultError("progress parameter is required"), nil
	}

	p, err := h.ds.SetProgress(ctx, id, progress)
	if err != nil {
		return h.failed("set_progress", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := h.ds.GetProfile(ctx)
	if err != nil {
		return h.failed("get_profile", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) updateProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	args := req.GetArguments()
	age, ok := args["age"].(string)
	if !ok {
		cur, err := h.ds.GetProfile(ctx)
		if err != nil {
			return h.failed("update_profile", err), nil
		}
		age = cur.Age
	}

	p, err := h.ds.UpdateProfile(ctx, name, age)
	if err != nil {
		return h.failed("update_profile", err), nil
	}
	return jsonResult(p), nil
}

func (h *handlers) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prof, err := h.ds.GetProfile(ctx)
	if err != nil {
		return h.failed("get_dashboard", err), nil
	}
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		return h.failed("get_dashboard", err), nil
	}
	return jsonResult(display.Dashboard(prof, programs, h.now())), nil
}

// failed turns a data source error into a tool error. Caller mistakes are not
// logged; anything else is.
func (h *handlers) failed(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, registry.ErrNotFound) {
		return mcp.NewToolResultError("no program with that id")
	}
	if !errors.Is(err, registry.ErrInvalidInput) && !errors.Is(err, profile.ErrInvalidInput) {
		h.log.Error("mcp "+tool, "error", err)
	}
	return mcp.NewToolResultError(tool + " failed: " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

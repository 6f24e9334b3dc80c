package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymMate", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymMate weekly workout planner. List, add, rename and delete training programs (one per weekday), record progress as a fraction between 0 and 1, and read or edit the user's profile."),
	)

	h := &handlers{ds: ds, log: log, now: time.Now}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolAddProgram, Handler: h.addProgram},
		server.ServerTool{Tool: toolUpdateProgram, Handler: h.updateProgram},
		server.ServerTool{Tool: toolDeleteProgram, Handler: h.deleteProgram},
		server.ServerTool{Tool: toolSetProgress, Handler: h.setProgress},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolUpdateProfile, Handler: h.updateProfile},
		server.ServerTool{Tool: toolGetDashboard, Handler: h.getDashboard},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWeeklyTracker, Handler: h.weeklyTracker},
		server.ServerResource{Resource: resSchedule, Handler: h.schedule},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

// --- Resource definitions ---

var resWeeklyTracker = mcp.NewResource(
	"gymmate://weekly_tracker",
	"Weekly Tracker",
	mcp.WithResourceDescription("Every program with its progress bar fill and percentage label"),
	mcp.WithMIMEType("application/json"),
)

var resSchedule = mcp.NewResource(
	"gymmate://schedule",
	"Schedule",
	mcp.WithResourceDescription("The weekly schedule as day and muscle group pairs"),
	mcp.WithMIMEType("application/json"),
)

package bridge

import (
	"context"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/bimo-labs/bimo/internal/project"
	"github.com/bimo-labs/bimo/internal/workspace"
)

// HandshakeArgs carries the client's protocol version.
type HandshakeArgs struct {
	Protocol string `json:"protocol"`
}

// HandshakeResult tells the client what it is talking to.
type HandshakeResult struct {
	Protocol string `json:"protocol"`
	Version  string `json:"version"`
}

// CreateProjectArgs are the arguments of create_project_dir.
type CreateProjectArgs struct {
	BaseDir     string `json:"baseDir"`
	ProjectName string `json:"projectName"`
}

// CreateProjectResult is the result of create_project_dir.
type CreateProjectResult struct {
	CreatedPath string `json:"createdPath"`
}

// PathArgs is shared by commands that take a single path.
type PathArgs struct {
	Path string `json:"path"`
}

// OpenProjectResult is the result of open_project.
type OpenProjectResult struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ReadDirResult is the result of read_dir.
type ReadDirResult struct {
	Entries []workspace.Entry `json:"entries"`
}

// ReadFileResult is the result of read_file_content.
type ReadFileResult struct {
	Content string `json:"content"`
}

// WriteFileArgs are the arguments of write_file_content.
type WriteFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RegisterEditorCommands registers every command the editor uses. version
// is the build version reported by handshake.
func RegisterEditorCommands(s *Server, version string) error {
	if err := Register(s, "handshake", func(_ context.Context, a HandshakeArgs) (HandshakeResult, error) {
		if err := CheckProtocol(a.Protocol); err != nil {
			return HandshakeResult{}, fserr.New(fserr.InvalidArgument, "handshake", "", err)
		}
		return HandshakeResult{Protocol: ProtocolVersion, Version: version}, nil
	}); err != nil {
		return err
	}

	if err := Register(s, "create_project_dir", func(_ context.Context, a CreateProjectArgs) (CreateProjectResult, error) {
		res, err := project.Create(project.CreateRequest{BaseDir: a.BaseDir, Name: a.ProjectName})
		if err != nil {
			return CreateProjectResult{}, err
		}
		return CreateProjectResult{CreatedPath: res.CreatedPath}, nil
	}); err != nil {
		return err
	}

	if err := Register(s, "open_project", func(_ context.Context, a PathArgs) (OpenProjectResult, error) {
		res, err := project.Open(a.Path)
		if err != nil {
			return OpenProjectResult{}, err
		}
		return OpenProjectResult{Path: res.Path, Name: res.Name}, nil
	}); err != nil {
		return err
	}

	if err := Register(s, "read_dir", func(_ context.Context, a PathArgs) (ReadDirResult, error) {
		entries, err := workspace.ReadDir(a.Path)
		if err != nil {
			return ReadDirResult{}, err
		}
		return ReadDirResult{Entries: entries}, nil
	}); err != nil {
		return err
	}

	if err := Register(s, "read_file_content", func(_ context.Context, a PathArgs) (ReadFileResult, error) {
		content, err := workspace.ReadFile(a.Path)
		if err != nil {
			return ReadFileResult{}, err
		}
		return ReadFileResult{Content: content}, nil
	}); err != nil {
		return err
	}

	return Register(s, "write_file_content", func(_ context.Context, a WriteFileArgs) (Empty, error) {
		return Empty{}, workspace.WriteFile(a.Path, a.Content)
	})
}

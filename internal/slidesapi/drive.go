package slidesapi

import (
	"context"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	MimeGoogleSlides = "application/vnd.google-apps.presentation"
	MimePPTX         = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

const listFields = "nextPageToken,files(id,name,mimeType,createdTime,modifiedTime,owners)"

type Owner struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// File is Drive file metadata; which fields are set depends on the
// request's field mask.
type File struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MimeType     string  `json:"mimeType"`
	CreatedTime  string  `json:"createdTime,omitempty"`
	ModifiedTime string  `json:"modifiedTime,omitempty"`
	Owners       []Owner `json:"owners,omitempty"`
	WebViewLink  string  `json:"webViewLink,omitempty"`
}

type FileList struct {
	Files         []File `json:"files"`
	NextPageToken string `json:"nextPageToken"`
}

// CopyOptions names the copy and optionally places it in a folder or
// converts it to another mime type.
type CopyOptions struct {
	Name     string
	ParentID string
	MimeType string
}

func (c *Client) CopyFile(ctx context.Context, fileID string, opts CopyOptions) (*File, error) {
	meta := &drive.File{Name: opts.Name, MimeType: opts.MimeType}
	if opts.ParentID != "" {
		meta.Parents = []string{opts.ParentID}
	}
	f, err := c.drive.Files.Copy(fileID, meta).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("files.copy", err)
	}
	return fileFromDrive(f), nil
}

// FileQuery filters a file listing. Trashed files are excluded unless
// IncludeTrashed is set.
type FileQuery struct {
	NameContains   string
	MimeTypes      []string
	FolderID       string
	IncludeTrashed bool
	PageSize       int
	PageToken      string
}

// BuildQuery renders the Drive search expression for q, or "" when
// there is nothing to filter on.
func BuildQuery(q FileQuery) string {
	var clauses []string
	if q.NameContains != "" {
		clauses = append(clauses, "name contains '"+strings.ReplaceAll(q.NameContains, "'", `\'`)+"'")
	}
	if len(q.MimeTypes) > 0 {
		conds := make([]string, len(q.MimeTypes))
		for i, mt := range q.MimeTypes {
			conds[i] = "mimeType = '" + mt + "'"
		}
		clauses = append(clauses, "("+strings.Join(conds, " or ")+")")
	}
	if q.FolderID != "" {
		clauses = append(clauses, "'"+q.FolderID+"' in parents")
	}
	if !q.IncludeTrashed {
		clauses = append(clauses, "trashed = false")
	}
	return strings.Join(clauses, " and ")
}

// ClampPageSize keeps n within the 1..100 range Drive accepts.
func ClampPageSize(n int) int {
	return max(1, min(100, n))
}

func (c *Client) ListFiles(ctx context.Context, q FileQuery) (*FileList, error) {
	call := c.drive.Files.List().
		PageSize(int64(ClampPageSize(q.PageSize))).
		Fields(googleapi.Field(listFields)).
		Context(ctx)
	if expr := BuildQuery(q); expr != "" {
		call = call.Q(expr)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, wrapErr("files.list", err)
	}
	list := &FileList{Files: make([]File, 0, len(resp.Files)), NextPageToken: resp.NextPageToken}
	for _, f := range resp.Files {
		list.Files = append(list.Files, *fileFromDrive(f))
	}
	return list, nil
}

func fileFromDrive(f *drive.File) *File {
	out := &File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
	}
	for _, o := range f.Owners {
		if o != nil {
			out.Owners = append(out.Owners, Owner{DisplayName: o.DisplayName, EmailAddress: o.EmailAddress})
		}
	}
	return out
}

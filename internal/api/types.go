// File path: internal/api/types.go
package api

import (
	"faqforge/internal/common"
	"faqforge/internal/reconcile"
	"faqforge/internal/store"
)

type createRequest struct {
	Identity string `json:"identity,omitempty"`
	reconcile.Edit
}

type versionsResponse struct {
	Identity string              `json:"identity"`
	Versions []store.VersionInfo `json:"versions"`
}

type importResponse struct {
	Identity string `json:"identity"`
	Version  int    `json:"version"`
	Steps    int    `json:"steps"`
}

type assetResponse struct {
	Ref string `json:"ref"`
}

type logsResponse struct {
	Entries []common.LogEntry `json:"entries"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

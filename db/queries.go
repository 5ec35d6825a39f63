package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Video queries

//go:embed sql/insert_video.sql
var InsertVideoSQL string

//go:embed sql/select_video_by_path.sql
var SelectVideoByPathSQL string

//go:embed sql/update_video_probe.sql
var UpdateVideoProbeSQL string

// Trim queries

//go:embed sql/insert_trim.sql
var InsertTrimSQL string

//go:embed sql/select_trims.sql
var SelectTrimsSQL string

//go:embed sql/select_trims_by_video.sql
var SelectTrimsByVideoSQL string

//go:embed sql/select_trim_by_id.sql
var SelectTrimByIDSQL string

//go:embed sql/delete_trim.sql
var DeleteTrimSQL string

// Export queue queries

//go:embed sql/queue_trim_export.sql
var QueueTrimExportSQL string

//go:embed sql/select_next_pending_trim.sql
var SelectNextPendingTrimSQL string

//go:embed sql/mark_trim_processing.sql
var MarkTrimProcessingSQL string

//go:embed sql/mark_trim_complete.sql
var MarkTrimCompleteSQL string

//go:embed sql/mark_trim_error.sql
var MarkTrimErrorSQL string

//go:embed sql/reset_processing_trims.sql
var ResetProcessingTrimsSQL string

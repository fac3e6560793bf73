package postgres

const sessionCols = `id, user_id, session_token, url, start_time, end_time,
       duration, interaction_count, is_active, created_at, updated_at`

const insertSessionSQL = `
INSERT INTO sessions (
  id, user_id, session_token, url, start_time, end_time,
  duration, interaction_count, is_active, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`

const getSessionSQL = `
SELECT ` + sessionCols + `
FROM sessions WHERE id = $1
`

const getSessionByTokenSQL = `
SELECT ` + sessionCols + `
FROM sessions WHERE session_token = $1
`

const lockSessionSQL = `
SELECT ` + sessionCols + `
FROM sessions WHERE id = $1
FOR UPDATE
`

const updateSessionSQL = `
UPDATE sessions SET
  url=$2, end_time=$3, duration=$4, interaction_count=$5,
  is_active=$6, updated_at=$7
WHERE id=$1
`

const incrementSessionSQL = `
UPDATE sessions SET
  interaction_count = interaction_count + 1, updated_at = $2
WHERE id = $1
RETURNING ` + sessionCols

const feedbackCols = `id, user_id, feedback_type, feedback, subject_name, created_at, updated_at`

const insertFeedbackSQL = `
INSERT INTO feedback (
  id, user_id, feedback_type, feedback, subject_name, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const getFeedbackSQL = `
SELECT ` + feedbackCols + `
FROM feedback WHERE id = $1
`

const lockFeedbackSQL = `
SELECT ` + feedbackCols + `
FROM feedback WHERE id = $1
FOR UPDATE
`

const updateFeedbackSQL = `
UPDATE feedback SET
  feedback_type=$2, feedback=$3, subject_name=$4, updated_at=$5
WHERE id=$1
`

const deleteFeedbackSQL = `DELETE FROM feedback WHERE id = $1`

const interactionCols = `id, session_token, user_id, interaction_type, "timestamp",
       url, element_info, data, created_at`

const insertInteractionSQL = `
INSERT INTO user_interactions (
  id, session_token, user_id, interaction_type, "timestamp",
  url, element_info, data, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`

const getInteractionSQL = `
SELECT ` + interactionCols + `
FROM user_interactions WHERE id = $1
`

package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE artifacts (
				journey VARCHAR(50) NOT NULL CHECK (journey IN ('applications', 'assessments', 'placement-applications')),
				id VARCHAR(64) NOT NULL,
				crn VARCHAR(50) NOT NULL,
				person_name VARCHAR(255) NOT NULL DEFAULT '',
				status VARCHAR(50) NOT NULL CHECK (status IN ('in_progress', 'submitted', 'withdrawn')),
				data JSONB NOT NULL DEFAULT '{}',
				document JSONB,
				risks JSONB,
				outdated_schema BOOLEAN NOT NULL DEFAULT FALSE,
				decision VARCHAR(100),
				application_id VARCHAR(64),
				withdrawal_reason TEXT,
				created_by VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				submitted_at TIMESTAMP WITH TIME ZONE,
				PRIMARY KEY (journey, id)
			);

			CREATE INDEX idx_artifacts_crn ON artifacts(crn);
			CREATE INDEX idx_artifacts_status ON artifacts(status);
			CREATE INDEX idx_artifacts_created_at ON artifacts(created_at);
		`,
		2: `
			CREATE INDEX idx_artifacts_application_id ON artifacts(application_id) WHERE application_id IS NOT NULL;
		`,
	}
}

package storage

import "time"

// FeatureModel is the GORM model for the features table
type FeatureModel struct {
	BranchName  string `gorm:"not null;index:idx_branch_name"`
	CreatedAt   time.Time
	Description string `gorm:"default:''"`
	Name        string `gorm:"primaryKey"`
	Position    int    `gorm:"not null;default:0;index:idx_position"`
	Status      string `gorm:"not null;default:'planned';check:status IN ('planned','in-progress','done')"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (FeatureModel) TableName() string { return "features" }

// FeatureDependencyModel is the GORM model for feature dependency edges
type FeatureDependencyModel struct {
	CreatedAt   time.Time
	DependsOn   string `gorm:"primaryKey"`
	FeatureName string `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (FeatureDependencyModel) TableName() string { return "feature_dependencies" }

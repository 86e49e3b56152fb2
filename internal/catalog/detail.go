package catalog

// Sub-records hanging off an item or monster detail page. Each mirrors one
// side query of the original catalog; all of them are optional sections and
// a zero slice simply means the entity has no such data.

// CraftEntry is one material line of the recipe producing an item.
type CraftEntry struct {
	RecipeID  int     `json:"RID"`
	ResultID  int     `json:"RItemID0"`
	ResultName string `json:"IName"`
	MaterialID   int    `json:"RItemID"`
	MaterialName string `json:"CraftItems"`
	Success    float64 `json:"RSuccess"`
	CreateCnt  int     `json:"RIsCreateCnt"`
	OrderNo    int     `json:"ROrderNo"`
	ImagePath  string  `json:"ImagePath"`

	// Raw sprite reference of the material icon.
	IconFile string `json:"-"`
	IconX    int    `json:"-"`
	IconY    int    `json:"-"`
}

// CraftUse is a recipe that consumes the item as a material.
type CraftUse struct {
	RecipeID   int     `json:"RID"`
	ResultID   int     `json:"RItemID0"`
	ResultName string  `json:"IName"`
	Success    float64 `json:"RSuccess"`
	CreateCnt  int     `json:"RIsCreateCnt"`
	ImagePath  string  `json:"ImagePath"`

	// Raw sprite reference of the result icon.
	IconFile string `json:"-"`
	IconX    int    `json:"-"`
	IconY    int    `json:"-"`
}

// DropSource is one monster that drops a given item, de-duplicated by
// (monster, drop group) with Count tracking how many rows collapsed into it.
type DropSource struct {
	MID          int     `json:"MID"`
	MName        string  `json:"MName"`
	MClass       string  `json:"MClass"`
	DropType     int     `json:"DDropType"`
	GroupChance  float64 `json:"DPercentGroup"`
	DropGroup    int     `json:"DGroup"`
	GroupName    string  `json:"DName"`
	DropID       int     `json:"DDrop"`
	ItemChance   float64 `json:"DPercentItem"`
	ItemID       int     `json:"DItem"`
	ItemName     string  `json:"IName"`
	Quantity     int     `json:"DNumber"`
	Pic          string  `json:"Pic"`
	Count        int     `json:"count"`

	// Numeric class code the MClass label is rendered from.
	MClassCode int `json:"-"`
}

// MerchantOffer is one merchant selling a given item.
type MerchantOffer struct {
	MerchantID   int    `json:"MerchantID"`
	MerchantName string `json:"MerchantName"`
	Price        int    `json:"Price"`
	PaymentType  string `json:"PaymentType"`
	PaymentCode  int    `json:"-"`
}

// MerchantItem is one inventory line of a merchant NPC.
type MerchantItem struct {
	ListID      int    `json:"MerchantListID"`
	ItemID      int    `json:"MerchantItemID"`
	ItemName    string `json:"MerchantItemName"`
	Price       int    `json:"MerchantItemPrice"`
	PaymentType string `json:"MerchantPaymentType"`
	PaymentCode int    `json:"-"`
	Picture     string `json:"MerchantItemPicture"`

	// Raw sprite reference of the item icon.
	IconFile string `json:"-"`
	IconX    int    `json:"-"`
	IconY    int    `json:"-"`
}

// MerchantRow is one line of the global sell list.
type MerchantRow struct {
	ListID      int    `json:"ListID"`
	MID         int    `json:"MID"`
	MName       string `json:"MName"`
	MClass      int    `json:"MClass"`
	ItemID      int    `json:"ItemID"`
	ItemName    string `json:"IName"`
	Price       int    `json:"Price"`
	PaymentType int    `json:"mPaymentType"`
	Portrait    string `json:"Portrait"`
}

// BeadEffect is the joined rune/bead record of a rune item.
type BeadEffect struct {
	BeadNo       int     `json:"mBeadNo"`
	Name         string  `json:"mBead_Name"`
	BeadType     int     `json:"mBeadType"`
	BeadTypeDesc string  `json:"mBeadTypeDesc"`
	ChkGroup     string  `json:"mChkGroup"`
	Percent      float64 `json:"mPercent"`
	ApplyTarget  string  `json:"mApplyTarget"`
	ParamA       int     `json:"mParamA"`
	ParamADesc   string  `json:"mParamADesc"`
	ParamB       int     `json:"mParamB"`
	ParamBDesc   string  `json:"mParamBDesc"`
	ParamC       int     `json:"mParamC"`
	ParamCDesc   string  `json:"mParamCDesc"`
	ParamD       int     `json:"mParamD"`
	ParamDDesc   string  `json:"mParamDDesc"`
	ParamE       int     `json:"mParamE"`
	ParamEDesc   string  `json:"mParamEDesc"`
	TargetIPos   string  `json:"mTargetIPos"`
	Prob         float64 `json:"mProb"`
	Group        int     `json:"mGroup"`
	ItemSubType  int     `json:"mItemSubType"`
	MaxHoleCount int     `json:"mMaxHoleCount"`
	HoleCount    int     `json:"mHoleCount"`
	HoleProb     float64 `json:"mHoleProb"`
	ModuleID     int     `json:"MID"`
}

// BeadModule is the module behind a socketed bead.
type BeadModule struct {
	ModuleID   int    `json:"MID"`
	Type       int    `json:"MType"`
	TypeName   string `json:"MName"`
	TypeDesc   string `json:"MDesc"`
	Level      int    `json:"MLevel"`
	AParam     int    `json:"MAParam"`
	AParamName string `json:"MAParamName"`
	BParam     int    `json:"MBParam"`
	BParamName string `json:"MBParamName"`
	CParam     int    `json:"MCParam"`
	CParamName string `json:"MCParamName"`
}

// HoleProb is one row of the bead hole probability table.
type HoleProb struct {
	ItemName     string  `json:"IName"`
	MaxHoleCount int     `json:"mMaxHoleCount"`
	HoleCount    int     `json:"mHoleCount"`
	Prob         float64 `json:"mProb"`
}

// AttributeEffect covers both attribute-add and attribute-resist rows; the
// display name comes from the reference sheet, empty when the sheet is
// unavailable.
type AttributeEffect struct {
	AID        int    `json:"AID"`
	AType      int    `json:"AType"`
	AName      string `json:"AName"`
	ALevel     int    `json:"ALevel"`
	DiceDamage int    `json:"ADiceDamage"`
	Damage     int    `json:"ADamage"`
}

// Protect is a protection bonus against a slain type.
type Protect struct {
	PID    int    `json:"PID"`
	SID    int    `json:"SID"`
	SName  string `json:"SName"`
	SLevel int    `json:"SLevel"`
	SDPV   int    `json:"SDPV"`
	SMPV   int    `json:"SMPV"`
	SRPV   int    `json:"SRPV"`
	SDDV   int    `json:"SDDV"`
	SMDV   int    `json:"SMDV"`
	SRDV   int    `json:"SRDV"`
}

// Slain is an attack bonus against a slain type.
type Slain struct {
	SID       int    `json:"SID"`
	SType     int    `json:"SType"`
	SName     string `json:"SName"`
	SLevel    int    `json:"SLevel"`
	HitPlus   int    `json:"SHitPlus"`
	DDPlus    int    `json:"SDDPlus"`
	RHitPlus  int    `json:"SRHitPlus"`
	RDDPlus   int    `json:"SRDDPlus"`
}

// Penalty is a per-class stat penalty row of an item, with the class icon
// already resolved.
type Penalty struct {
	UseClass int    `json:"IUseClass"`
	ClassPic string `json:"PanaltyClassPic"`
	IDHIT    int    `json:"IDHIT"`
	IDDD     int    `json:"IDDD"`
	IRHIT    int    `json:"IRHIT"`
	IRDD     int    `json:"IRDD"`
	IMHIT    int    `json:"IMHIT"`
	IMDD     int    `json:"IMDD"`
	IHPPlus  int    `json:"IHPPlus"`
	IMPPlus  int    `json:"IMPPlus"`
	ISTR     int    `json:"ISTR"`
	IDEX     int    `json:"IDEX"`
	IINT     int    `json:"IINT"`
	IHPRegen int    `json:"IHPRegen"`
	IMPRegen int    `json:"IMPRegen"`
	IAttackRate int `json:"IAttackRate"`
	IMoveRate   int `json:"IMoveRate"`
	ICritical   int `json:"ICritical"`
	IRange      int `json:"IRange"`
	IAddWeight  float64 `json:"IAddWeight"`
	IAddPotionRestore int `json:"IAddPotionRestore"`
	IDPV  int `json:"IDPV"`
	IMPV  int `json:"IMPV"`
	IRPV  int `json:"IRPV"`
	IDDV  int `json:"IDDV"`
	IMDV  int `json:"IMDV"`
	IRDV  int `json:"IRDV"`
	IHDPV int `json:"IHDPV"`
	IHMPV int `json:"IHMPV"`
	IHRPV int `json:"IHRPV"`
	IHDDV int `json:"IHDDV"`
	IHMDV int `json:"IHMDV"`
	IHRDV int `json:"IHRDV"`
}

// AbnormalResist links an entity to an abnormal effect it resists, joined
// through to the skill pack that applies the effect.
type AbnormalResist struct {
	OwnerID       int    `json:"ownerId"`
	OwnerName     string `json:"ownerName"`
	AID           int    `json:"AID"`
	ADesc         string `json:"ADesc"`
	AType         int    `json:"AType"`
	ATypeDesc     string `json:"ATypeDesc"`
	SID           int    `json:"SID"`
	SName         string `json:"SName"`
	SPID          int    `json:"mSPID"`
	SkillPackName string `json:"SkillPackName"`
	SkillPackDesc string `json:"SkillPackDesc"`
	SkillIconPath string `json:"skill_icon_path"`

	// Raw sprite reference the icon path is composed from.
	SpriteFile string `json:"-"`
	SpriteX    *int   `json:"-"`
	SpriteY    *int   `json:"-"`
}

// SpecificProc is the special on-use behavior record of an item.
type SpecificProc struct {
	ItemID     int    `json:"mIID"`
	ItemName   string `json:"IName"`
	ProcNo     int    `json:"mProcNo"`
	ProcDesc   string `json:"mProcDesc"`
	AParam     int    `json:"mAParam"`
	AParamDesc string `json:"mAParamDesc"`
	BParam     int    `json:"mBParam"`
	BParamDesc string `json:"mBParamDesc"`
	CParam     int    `json:"mCParam"`
	CParamDesc string `json:"mCParamDesc"`
	DParam     int    `json:"mDParam"`
	DParamDesc string `json:"mDParamDesc"`
}

// SkillLink joins an item to the skill pack it grants.
type SkillLink struct {
	ItemID     int    `json:"IID"`
	ItemName   string `json:"IName"`
	SID        int    `json:"SID"`
	AID        int    `json:"AID"`
	ModuleID   int    `json:"MID"`
	SPID       int    `json:"mSPID"`
	PackName   string `json:"mName"`
	SpriteFile string `json:"mSpriteFile"`
	SpriteX    *int   `json:"mSpriteX"`
	SpriteY    *int   `json:"mSpriteY"`
	LinkedSID  int    `json:"v2_SID"`
	LinkedName string `json:"v2_SName"`
	ModuleType int    `json:"MType"`
	AParam     int    `json:"MAParam"`
	BParam     int    `json:"MBParam"`
	CParam     int    `json:"MCParam"`
}

// TransformEntry is one monster form of a transformation group.
type TransformEntry struct {
	No       int    `json:"mNo"`
	MonID    int    `json:"mMonID"`
	Level    int    `json:"mLevel"`
	Control  int    `json:"mControl"`
	MName    string `json:"MName"`
	Portrait string `json:"portrait"`
}

// AbnormalTypeInfo is the display record of an abnormal type with its icon.
type AbnormalTypeInfo struct {
	AID       int    `json:"AID"`
	AName     string `json:"AName"`
	AEffect   int    `json:"AEffect"`
	Removable int    `json:"ARemovable"`
	FileName  string `json:"AFileName"`
	IconX     *int   `json:"AIconX"`
	IconY     *int   `json:"AIconY"`
	IconPath  string `json:"icon_path"`
}

// SkillActivation resolves the skill behind a skill pack, with its sprite.
type SkillActivation struct {
	SPID       int    `json:"mSPID"`
	PackName   string `json:"mName"`
	SpriteFile string `json:"mSpriteFile"`
	SpriteX    *int   `json:"mSpriteX"`
	SpriteY    *int   `json:"mSpriteY"`
	SID        int    `json:"SID"`
	SName      string `json:"SName"`
	IconPath   string `json:"icon_path"`
}

// ItemDetail is the full fan-out aggregate returned for one item. Optional
// sections are nil when the entity has no such rows or the lookup failed.
type ItemDetail struct {
	Item     Item   `json:"item"`
	IconPath string `json:"iconPath"`
	UseClass int    `json:"useClass"`

	// Model codes composed from the world-model resource.
	ModelPrefix string   `json:"modelPrefix"`
	ModelNos    []string `json:"modelNos"`

	DropSources []DropSource    `json:"dropSources,omitempty"`
	Merchants   []MerchantOffer `json:"merchants,omitempty"`
	CraftRecipe []CraftEntry    `json:"craftRecipe,omitempty"`
	CraftUses   []CraftUse      `json:"craftUses,omitempty"`

	SpecificProc    *SpecificProc     `json:"specificProc,omitempty"`
	AbnormalResists []AbnormalResist  `json:"abnormalResists,omitempty"`
	Skill           *SkillLink        `json:"skill,omitempty"`
	SkillIcon       string            `json:"skillIcon,omitempty"`
	LinkedSkills    []RelatedSkill    `json:"linkedSkills,omitempty"`
	AbnormalType    *AbnormalTypeInfo `json:"abnormalType,omitempty"`
	TransformList   []TransformEntry  `json:"transformList,omitempty"`

	RuneBead       *BeadEffect      `json:"runeBead,omitempty"`
	BeadActivation *SkillActivation `json:"beadActivation,omitempty"`
	BeadModule     *BeadModule      `json:"beadModule,omitempty"`
	BeadHoleProbs  []HoleProb       `json:"beadHoleProbs,omitempty"`

	AttributeAdd    *AttributeEffect `json:"attributeAdd,omitempty"`
	AttributeResist *AttributeEffect `json:"attributeResist,omitempty"`
	Protect         *Protect         `json:"protect,omitempty"`
	Slain           *Slain           `json:"slain,omitempty"`
	Penalties       []Penalty        `json:"penalties,omitempty"`
}

// MonsterDrop is one de-duplicated drop line of a monster.
type MonsterDrop struct {
	MID         int     `json:"MID"`
	MName       string  `json:"MName"`
	MClass      string  `json:"MClass"`
	DropType    int     `json:"DDropType"`
	GroupChance float64 `json:"DPercentGroup"`
	DropGroup   int     `json:"DGroup"`
	GroupName   string  `json:"DName"`
	DropID      int     `json:"DDrop"`
	ItemChance  float64 `json:"DPercentItem"`
	ItemID      int     `json:"DItem"`
	ItemName    string  `json:"IName"`
	Quantity    int     `json:"DNumber"`
	Pic         string  `json:"Pic"`
	Count       int     `json:"count"`

	// Raw fields the label and icon are rendered from.
	MClassCode int    `json:"-"`
	IconFile   string `json:"-"`
	IconX      int    `json:"-"`
	IconY      int    `json:"-"`
}

// MonsterLocation is one spawn-place line from the location sheet.
type MonsterLocation struct {
	Location string  `json:"Location"`
	Level    *string `json:"LocationLevel"`
}

// MonsterDetail is the full fan-out aggregate returned for one monster.
type MonsterDetail struct {
	Monster  Monster `json:"monster"`
	Portrait string  `json:"portrait"`

	ClassName string            `json:"className"`
	RaceDesc  string            `json:"raceDesc,omitempty"`
	Locations []MonsterLocation `json:"locations,omitempty"`

	// Model number of the world model, zero padded to five digits, plus
	// the composed model URL. Empty when the monster has no resource row.
	ModelNo string `json:"modelNo,omitempty"`
	Model   string `json:"model,omitempty"`

	RespawnTick    int `json:"respawnTick"`
	RespawnTickVar int `json:"respawnTickVar"`

	Drops           []MonsterDrop    `json:"drops,omitempty"`
	AbnormalResists []AbnormalResist `json:"abnormalResists,omitempty"`
	AttributeAdd    *AttributeEffect `json:"attributeAdd,omitempty"`
	AttributeResist *AttributeEffect `json:"attributeResist,omitempty"`
	Protect         *Protect         `json:"protect,omitempty"`
	Slain           *Slain           `json:"slain,omitempty"`

	// Populated when the monster is a merchant NPC.
	SellItems []MerchantItem `json:"sellItems,omitempty"`
}

// RelatedSkill is a compact skill reference used in cross-link sections.
type RelatedSkill struct {
	SID  int    `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	Icon string `json:"icon"`

	SpriteFile string `json:"-"`
	SpriteX    *int   `json:"-"`
	SpriteY    *int   `json:"-"`
}

// RelatedItem is a compact item reference used in cross-link sections.
type RelatedItem struct {
	IID  int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`

	IconFile string `json:"-"`
	IconX    int    `json:"-"`
	IconY    int    `json:"-"`
}

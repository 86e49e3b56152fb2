package catalog

// Monster is the read projection of one DT_Monster row.
type Monster struct {
	MID            int    `json:"MID"`
	MName          string `json:"MName"`
	MLevel         int    `json:"mLevel"`
	MClass         int    `json:"MClass"`
	MExp           int    `json:"MExp"`
	MHIT           int    `json:"MHIT"`
	MMinD          int    `json:"MMinD"`
	MMaxD          int    `json:"MMaxD"`
	MAttackRateOrg int    `json:"MAttackRateOrg"`
	MMoveRateOrg   int    `json:"MMoveRateOrg"`
	MAttackRateNew int    `json:"MAttackRateNew"`
	MMoveRateNew   int    `json:"MMoveRateNew"`
	MHP            int    `json:"MHP"`
	MMP            int    `json:"MMP"`
	MMoveRange     int    `json:"MMoveRange"`
	MGbjType       int    `json:"MGbjType"`
	MRaceType      int    `json:"MRaceType"`
	MAiType        int    `json:"MAiType"`
	MCastingDelay  int    `json:"MCastingDelay"`
	MChaotic       int    `json:"MChaotic"`
	MSameRace1     int    `json:"MSameRace1"`
	MSameRace2     int    `json:"MSameRace2"`
	MSameRace3     int    `json:"MSameRace3"`
	MSameRace4     int    `json:"MSameRace4"`
	MSightRange    int    `json:"mSightRange"`
	MAttackRange   int    `json:"mAttackRange"`
	MSkillRange    int    `json:"mSkillRange"`
	MBodySize      int    `json:"mBodySize"`
	MDetectTransF  int    `json:"mDetectTransF"`
	MDetectTransP  int    `json:"mDetectTransP"`
	MDetectChao    int    `json:"mDetectChao"`
	MAiEx          int    `json:"mAiEx"`
	MScale         int    `json:"mScale"`
	MIsResistTransF bool  `json:"mIsResistTransF"`
	MIsEvent       bool   `json:"mIsEvent"`
	MIsTest        bool   `json:"mIsTest"`
	MHPNew         int    `json:"mHPNew"`
	MMPNew         int    `json:"mMPNew"`
	MBuyMerchanID    int  `json:"mBuyMerchanID"`
	MSellMerchanID   int  `json:"mSellMerchanID"`
	MChargeMerchanID int  `json:"mChargeMerchanID"`
	MTransformWeight int  `json:"mTransformWeight"`
	MNationOp        int  `json:"mNationOp"`
	MHPRegen         int  `json:"mHPRegen"`
	MMPRegen         int  `json:"mMPRegen"`
	IContentsLv      int  `json:"IContentsLv"`
	MIsEventTest     bool `json:"mIsEventTest"`
	MIsShowHp        bool `json:"mIsShowHp"`
	MSupportType     int  `json:"mSupportType"`
	MVolitionOfHonor int  `json:"mVolitionOfHonor"`
	MWMapIconType    int  `json:"mWMapIconType"`
	MIsAmpliableTermOfValidity bool `json:"mIsAmpliableTermOfValidity"`
	MAttackType      int  `json:"mAttackType"`
	MTransType       int  `json:"mTransType"`
	MDPV             int  `json:"mDPV"`
	MMPV             int  `json:"mMPV"`
	MRPV             int  `json:"mRPV"`
	MDDV             int  `json:"mDDV"`
	MMDV             int  `json:"mMDV"`
	MRDV             int  `json:"mRDV"`
	MSubDDWhenCritical   int  `json:"mSubDDWhenCritical"`
	MEnemySubCriticalHit int  `json:"mEnemySubCriticalHit"`
	MEventQuest          bool `json:"mEventQuest"`
	MEScale              int  `json:"mEScale"`
}
